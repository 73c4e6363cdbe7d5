package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angeloszaimis/host-health/internal/health"
)

const namespace = "host_health"

type promMetrics struct {
	registry *prometheus.Registry
	batches  prometheus.Counter
	probes   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight *prometheus.GaugeVec
	up       *prometheus.GaugeVec
}

func newPromMetrics() *promMetrics {
	pm := &promMetrics{
		registry: prometheus.NewRegistry(),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Number of probe batches triggered",
		}),
		probes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Completed probes by host and outcome",
		}, []string{"host", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_duration_seconds",
			Help:      "Probe duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8},
		}, []string{"host"}),
		inFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "probes_in_flight",
			Help:      "Probes started but not yet completed",
		}, []string{"host"}),
		up: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "host_up",
			Help:      "1 if the last probe of the host returned a payload, 0 otherwise",
		}, []string{"host"}),
	}

	pm.registry.MustRegister(pm.batches, pm.probes, pm.duration, pm.inFlight, pm.up)

	return pm
}

// observe updates the collectors for event. inFlight is the host's in-flight
// count after the event; the gauge mirrors it rather than counting on its
// own, since dropped events would otherwise drive it negative.
func (pm *promMetrics) observe(event MetricEvent, inFlight int64) {
	switch event.Type {
	case EventBatchTriggered:
		pm.batches.Inc()

	case EventProbeStarted:
		pm.inFlight.WithLabelValues(event.Host).Set(float64(inFlight))

	case EventProbeCompleted:
		pm.inFlight.WithLabelValues(event.Host).Set(float64(inFlight))
		pm.probes.WithLabelValues(event.Host, string(event.Outcome)).Inc()
		pm.duration.WithLabelValues(event.Host).Observe(event.Duration.Seconds())

		up := 0.0
		if event.Outcome == health.Successful {
			up = 1
		}
		pm.up.WithLabelValues(event.Host).Set(up)
	}
}

func (pm *promMetrics) handler() http.Handler {
	return promhttp.HandlerFor(pm.registry, promhttp.HandlerOpts{})
}
