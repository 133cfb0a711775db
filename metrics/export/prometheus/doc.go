// Package prometheus provides Prometheus collectors for throttle metrics.
//
// [NewPrometheusExporter] accepts a [throttle.Limiter] and exposes an [http.Handler]
// that renders all throttle counters and histograms in Prometheus text exposition
// format. Counter names are prefixed throttle_*_total; the single histogram is
// throttle_check_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate limiter state.
package prometheus
