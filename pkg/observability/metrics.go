package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes commit outcomes as Prometheus collectors.
type Metrics struct {
	transitions *prometheus.CounterVec
	rollbacks   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors. A nil registerer uses
// the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stator",
			Name:      "transitions_total",
			Help:      "Transition attempts by machine, event and result.",
		}, []string{"machine", "event", "result"}),
		rollbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stator",
			Name:      "rollbacks_total",
			Help:      "Attribute writes reverted after a failed commit.",
		}, []string{"machine"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stator",
			Name:      "transition_duration_seconds",
			Help:      "Wall time of committed transitions.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"machine", "event"}),
	}
	reg.MustRegister(m.transitions, m.rollbacks, m.duration)
	return m
}

// Hooks returns a hook set that records every commit outcome.
func (m *Metrics) Hooks() Hooks {
	return Hooks{
		OnTransition: func(e *TransitionEvent) {
			m.transitions.WithLabelValues(e.Machine, e.Event, string(ResultCommitted)).Inc()
			m.duration.WithLabelValues(e.Machine, e.Event).Observe(e.Duration.Seconds())
		},
		OnHalt: func(e *TransitionEvent) {
			m.transitions.WithLabelValues(e.Machine, e.Event, string(ResultHalted)).Inc()
		},
		OnRollback: func(e *TransitionEvent) {
			m.rollbacks.WithLabelValues(e.Machine).Inc()
		},
		OnActionFailure: func(e *TransitionEvent) {
			m.transitions.WithLabelValues(e.Machine, e.Event, string(ResultRolledBack)).Inc()
		},
		OnFireFailed: func(e *TransitionEvent) {
			m.transitions.WithLabelValues(e.Machine, e.Event, string(ResultUnresolved)).Inc()
		},
	}
}
