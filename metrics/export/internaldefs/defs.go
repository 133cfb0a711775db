package internaldefs

import (
	throttle "github.com/RelayOne/throttle"
)

// CounterDef defines a public type used by throttle APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   throttle.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by throttle APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   throttle.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the rate limiting engine.
var CounterDefs = []CounterDef{
	{ID: throttle.MetricCheckAllowed, Name: "throttle_check_allowed_total", Help: "Rate-limit checks that allowed requests."},
	{ID: throttle.MetricCheckDenied, Name: "throttle_check_denied_total", Help: "Rate-limit checks that denied requests."},
	{ID: throttle.MetricSharedStoreError, Name: "throttle_shared_store_error_total", Help: "Shared-store operations that failed and were served locally."},
	{ID: throttle.MetricLocalFallback, Name: "throttle_local_fallback_total", Help: "Evaluations degraded to the local store after a shared-store failure."},
	{ID: throttle.MetricSkip, Name: "throttle_skip_total", Help: "Requests bypassed by a skip predicate without touching any counter."},
	{ID: throttle.MetricSweepEvicted, Name: "throttle_sweep_evicted_total", Help: "Stale local window entries removed by the expiry sweeper."},
}

// HistogramDefs is an exported constant or variable used by the rate limiting engine.
var HistogramDefs = []HistogramDef{
	{ID: throttle.MetricCheckLatency, Name: "throttle_check_latency_seconds", Help: "Check latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the rate limiting engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the rate limiting engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
