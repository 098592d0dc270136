package recommend

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of a recommendation call.
const (
	OutcomeExact    = "exact"
	OutcomeFallback = "fallback"
	OutcomeNone     = "none"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics counts recommendation outcomes and times the whole call.
type Metrics struct {
	outcomes *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hotelbook",
			Subsystem: "recommend",
			Name:      "outcomes_total",
			Help:      "Room recommendations by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hotelbook",
			Subsystem: "recommend",
			Name:      "duration_seconds",
			Help:      "Time spent producing a room recommendation, inventory fetch included.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.outcomes, m.duration)
	return m
}

func (m *Metrics) observe(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome).Inc()
	m.duration.Observe(time.Since(start).Seconds())
}
