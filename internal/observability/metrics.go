package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus counters and histograms for a fetch run.
type Metrics struct {
	EventsTotal   prometheus.Counter
	Downloads     prometheus.Counter
	Skips         prometheus.Counter
	Failures      prometheus.Counter
	EventDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewMetrics creates and registers all dispatcher metrics on a private
// registry, served by Handler.
func NewMetrics() *Metrics {
	m := &Metrics{
		EventsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firefetch",
			Name:      "events_total",
			Help:      "Total fire events submitted to the dispatcher.",
		}),
		Downloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firefetch",
			Name:      "downloads_total",
			Help:      "Thumbnails successfully written to disk.",
		}),
		Skips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firefetch",
			Name:      "skips_total",
			Help:      "Events with no imagery in the filtered window.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "firefetch",
			Name:      "failures_total",
			Help:      "Events whose pipeline failed.",
		}),
		EventDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "firefetch",
			Name:      "event_duration_seconds",
			Help:      "Duration of a complete per-event pipeline.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.EventsTotal,
		m.Downloads,
		m.Skips,
		m.Failures,
		m.EventDuration,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this run's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
