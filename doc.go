// Package throttle provides fixed-window request rate limiting with a Redis-backed
// shared counter store and automatic degrade-to-local-memory fallback.
//
// The package is designed for concurrent server workloads: Limiter methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// throttle is the public surface. It exposes [Limiter], [Builder], [Config], [Policy],
// and value types (Decision, MetricsSnapshot, etc.). All internal coordination — counter
// stores, window evaluation, fallback routing, expiry sweeping — lives under internal/
// and is never exported. HTTP adapters live in the middleware sub-package and consume
// only the public surface.
//
// # What this package must NOT do
//
//   - Expose Redis clients, internal stores, or window bookkeeping in its public API.
//   - Surface transient shared-store errors to callers: Check always returns a Decision.
//   - Dictate HTTP status codes or header formats — callers translate Decisions.
//
// # Availability contract
//
// Check is the hot path. It must return a usable Decision for every call: when the
// shared store is unreachable the evaluation degrades to the process-local store for
// that request only, and the shared path is re-attempted on the very next call. A
// rejected request is an expected operational outcome (Decision.Allowed == false),
// never an error.
package throttle
