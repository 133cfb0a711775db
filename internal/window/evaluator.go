package window

import (
	"context"
	"time"

	"github.com/RelayOne/throttle/internal/store"
)

// Result is one window evaluation. It is always usable: SharedErr records a swallowed
// shared-store failure for observability, never a caller-visible error.
type Result struct {
	Count        int64
	Remaining    int64
	ResetSeconds int64
	Allowed      bool

	// Fallback is true when the evaluation was served by the local store after a
	// shared-store failure (not when running in local-only mode).
	Fallback bool

	// SharedErr is the shared-store error that triggered the fallback, if any.
	SharedErr error
}

// Evaluator routes evaluations between the shared and local counter stores.
type Evaluator struct {
	shared store.SharedStore
	local  *store.LocalStore
}

// NewEvaluator constructs an evaluator. shared may be nil for local-only mode.
func NewEvaluator(shared store.SharedStore, local *store.LocalStore) *Evaluator {
	return &Evaluator{shared: shared, local: local}
}

// Evaluate increments the counter for key and produces the decision inputs for one
// request. max and window must be positive; callers validate at construction time.
func (e *Evaluator) Evaluate(ctx context.Context, key string, max int64, window time.Duration) Result {
	if e.shared != nil {
		switch e.shared.State() {
		case store.StateReady, store.StateConnecting:
			count, ttl, err := e.shared.Incr(ctx, key, window)
			if err == nil {
				return finish(count, ttl, max, window, false, nil)
			}
			// Degrade to local for this request only; no retry, no double count.
			count, ttl = e.local.Incr(key, window)
			return finish(count, ttl, max, window, true, err)
		}
	}

	count, ttl := e.local.Incr(key, window)
	return finish(count, ttl, max, window, false, nil)
}

func finish(count int64, ttl time.Duration, max int64, window time.Duration, fallback bool, sharedErr error) Result {
	remaining := max - count
	if remaining < 0 {
		remaining = 0
	}

	// No TTL reported means the key exists without expiry (idempotent-set race or a
	// store hiccup); treat it as a fresh window rather than reporting zero.
	if ttl <= 0 {
		ttl = window
	}
	reset := ceilSeconds(ttl)
	if maxReset := ceilSeconds(window); reset > maxReset {
		reset = maxReset
	}

	return Result{
		Count:        count,
		Remaining:    remaining,
		ResetSeconds: reset,
		Allowed:      count <= max,
		Fallback:     fallback,
		SharedErr:    sharedErr,
	}
}

func ceilSeconds(d time.Duration) int64 {
	return int64((d + time.Second - 1) / time.Second)
}
