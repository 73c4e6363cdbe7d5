// Package metrics collects probe statistics for the dashboard.
//
// Producers push MetricEvent values into a buffered channel with Emit, which
// never blocks the probe path. A single collector goroutine folds the events
// into:
//   - probe counts and in-flight probes per host
//   - outcome counts per host (SUCCESSFUL, ERROR, TIMEOUT, UNKNOWN)
//   - probe durations with percentiles (P50, P95, P99)
//   - HTTP status code distribution
//
// The same events feed a private Prometheus registry exposed by
// PrometheusHandler, while Handler serves a JSON snapshot.
//
// Example usage:
//
//	collector := metrics.NewCollector(256, logger)
//	collector.Start(ctx)
//
//	metrics.Emit(collector.EventChannel(), metrics.MetricEvent{
//		Type:     metrics.EventProbeCompleted,
//		Host:     "http://192.168.68.107",
//		Outcome:  health.Timeout,
//		Duration: 4 * time.Second,
//	})
//
// On context cancellation the collector drains buffered events before exiting.
package metrics
