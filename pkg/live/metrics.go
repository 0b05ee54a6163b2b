package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// serverMetrics collects preview-server observations.
type serverMetrics struct {
	sessionsActive prometheus.Gauge
	framesSent     prometheus.Counter
	patchesSent    prometheus.Counter
}

func newServerMetrics(reg prometheus.Registerer) *serverMetrics {
	factory := promauto.With(reg)

	return &serverMetrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "lamina",
			Subsystem: "live",
			Name:      "sessions_active",
			Help:      "Currently connected preview sessions",
		}),

		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lamina",
			Subsystem: "live",
			Name:      "frames_sent_total",
			Help:      "Patch frames streamed to clients",
		}),

		patchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "lamina",
			Subsystem: "live",
			Name:      "patches_sent_total",
			Help:      "Individual patches streamed to clients",
		}),
	}
}
