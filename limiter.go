package throttle

import (
	"context"
	"time"

	"github.com/RelayOne/throttle/internal/store"
	"github.com/RelayOne/throttle/internal/window"
)

// Limiter defines a public type used by throttle APIs.
//
// Limiter instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Limiter struct {
	config  Config
	eval    *window.Evaluator
	local   *store.LocalStore
	sweeper *store.Sweeper
	metrics *Metrics
}

// Check describes the check operation and its observable behavior.
//
// Check always returns a Decision: shared-store failures degrade to local evaluation,
// a rejected request is reported as Decision.Allowed == false, and non-positive limits
// fall back to the validated default policy rather than failing the request.
// Check does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (l *Limiter) Check(ctx context.Context, key string, max int64, win time.Duration) Decision {
	var message string
	if l != nil {
		message = l.config.DefaultPolicy.Message
	}
	return l.CheckPolicy(ctx, key, Policy{Max: max, Window: win, Message: message})
}

// CheckDefault describes the checkdefault operation and its observable behavior.
//
// CheckDefault evaluates key against the configured default policy.
// CheckDefault does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (l *Limiter) CheckDefault(ctx context.Context, key string) Decision {
	if l == nil {
		return Decision{Allowed: true}
	}
	return l.CheckPolicy(ctx, key, l.config.DefaultPolicy)
}

// CheckPolicy describes the checkpolicy operation and its observable behavior.
//
// CheckPolicy always returns a Decision; see Check for the availability contract.
// CheckPolicy does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (l *Limiter) CheckPolicy(ctx context.Context, key string, p Policy) Decision {
	if l == nil {
		return Decision{Allowed: true}
	}
	if !p.Valid() {
		// Construction-time validation guarantees the default policy is usable.
		p = l.config.DefaultPolicy
	}

	var start time.Time
	if l.metrics.LatencyEnabled() {
		start = time.Now()
	}

	res := l.eval.Evaluate(ctx, key, p.Max, p.Window)

	if res.SharedErr != nil {
		l.metrics.Inc(MetricSharedStoreError)
	}
	if res.Fallback {
		l.metrics.Inc(MetricLocalFallback)
	}
	if res.Allowed {
		l.metrics.Inc(MetricCheckAllowed)
	} else {
		l.metrics.Inc(MetricCheckDenied)
	}
	if l.metrics.LatencyEnabled() {
		l.metrics.Observe(MetricCheckLatency, time.Since(start))
	}

	return Decision{
		Allowed:      res.Allowed,
		Count:        res.Count,
		Limit:        p.Max,
		Remaining:    res.Remaining,
		ResetSeconds: res.ResetSeconds,
		Message:      p.Message,
	}
}

// RecordSkip describes the recordskip operation and its observable behavior.
//
// RecordSkip counts a bypassed evaluation (for example, a health-check request excluded
// by a skip predicate). No counter store is touched and no decision is computed.
// RecordSkip does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (l *Limiter) RecordSkip() {
	if l == nil {
		return
	}
	l.metrics.Inc(MetricSkip)
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (l *Limiter) MetricsSnapshot() MetricsSnapshot {
	if l == nil || l.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return l.metrics.Snapshot()
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (l *Limiter) Close() {
	if l == nil {
		return
	}
	if l.sweeper != nil {
		l.sweeper.Stop()
	}
}
