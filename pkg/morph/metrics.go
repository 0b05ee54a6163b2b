package morph

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects per-pass reconciliation observations. Attach one to a
// Context to export pass counts, durations, and live-tree mutation volume.
type Metrics struct {
	passesTotal  prometheus.Counter
	passDuration prometheus.Histogram
	mutations    *prometheus.CounterVec
}

// NewMetrics registers reconciler metrics with reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		passesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lamina",
			Subsystem: "morph",
			Name:      "passes_total",
			Help:      "Total number of reconciliation passes",
		}),

		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lamina",
			Subsystem: "morph",
			Name:      "pass_duration_seconds",
			Help:      "Reconciliation pass duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		}),

		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lamina",
			Subsystem: "morph",
			Name:      "mutations_total",
			Help:      "Live-tree mutations applied, by operation",
		}, []string{"op"}),
	}
}

// ObservePass records one completed reconciliation pass.
func (m *Metrics) ObservePass(d time.Duration) {
	m.passesTotal.Inc()
	m.passDuration.Observe(d.Seconds())
}

// ObserveMutation records one applied live-tree mutation.
func (m *Metrics) ObserveMutation(op string) {
	m.mutations.WithLabelValues(op).Inc()
}
