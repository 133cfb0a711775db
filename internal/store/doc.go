// Package store provides the counter store primitives behind window evaluation: a
// Redis-backed shared store with a best-effort readiness signal, a mutex-guarded
// process-local store, and the background sweeper that bounds local memory growth.
//
// # Window semantics
//
// Fixed-window counters: atomic increment with the TTL set only on first creation of a
// key, so the reset boundary corresponds to a fixed epoch rather than last-access time.
// The shared store performs INCR + conditional PEXPIRE + PTTL in one Lua script; the
// local store resets an aged-out entry on read before incrementing.
//
// # What this package must NOT do
//
//   - Make allow/deny decisions — it only counts. Decisions live in internal/window.
//   - Retry a failed shared-store operation. Callers fall back to the local store.
//   - Be imported outside the throttle module.
package store
