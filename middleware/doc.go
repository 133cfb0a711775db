// Package middleware provides net/http adapters for throttle: handler wrappers that
// evaluate a policy per request, write the standard X-RateLimit-* response headers,
// and translate a denied Decision into HTTP 429 with a Retry-After hint.
//
// # Key derivation
//
// Keys are namespaced strings so different strategies never collide:
//
//   - [KeyByIP] — "ip:<addr>" from the first X-Forwarded-For entry, else X-Real-IP,
//     else CF-Connecting-IP, else the connection's remote address, else "unknown".
//   - [KeyByUser] — "user:<id>" when an identity is present, falling back to KeyByIP.
//   - [Tiered] — picks both the key and the policy by authentication presence, so
//     authenticated traffic gets its own ceiling under its own namespace.
//
// Identities come from an [IdentityFunc]; [IdentityFromBearer] derives one from a
// verified JWT subject without coupling the limiter to token issuance.
//
// # What this package must NOT do
//
//   - Touch counter state for skipped requests (skip predicates bypass evaluation
//     entirely).
//   - Reach into internal/ packages; it consumes only the public throttle surface.
package middleware
