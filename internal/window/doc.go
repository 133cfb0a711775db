// Package window turns raw counter increments into rate-limit evaluations: count,
// remaining quota, reset time, and the allow/deny verdict, routed to whichever counter
// store is reachable.
//
// # Fallback semantics
//
// The shared path is attempted only while the store reports ready-or-connecting. Any
// error during the attempt re-routes that single evaluation to the local store with no
// retry against the shared store, so no hit is ever counted twice. Every request
// decides its path independently; there is no circuit breaker, and shared-store
// recovery is picked up on the very next call.
//
// # What this package must NOT do
//
//   - Return errors to callers: shared-store failures are swallowed into the fallback
//     path and surfaced only as a flag on the Result for observability.
//   - Import the public throttle package or any sibling except internal/store.
package window
