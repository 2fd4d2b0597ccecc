package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for add decisions
const (
	OutcomeValid    = "valid"
	OutcomeWarning  = "warning"
	OutcomeRejected = "rejected"
)

// Metrics groups the planner's Prometheus collectors.
type Metrics struct {
	AddDecisions    *prometheus.CounterVec
	CoursesAdded    prometheus.Counter
	Removals        *prometheus.CounterVec
	Analyses        prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AddDecisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "courseplanner",
			Name:      "add_decisions_total",
			Help:      "Add checks by outcome.",
		}, []string{"outcome"}),
		CoursesAdded: f.NewCounter(prometheus.CounterOpts{
			Namespace: "courseplanner",
			Name:      "courses_added_total",
			Help:      "Plan entries created, corequisites included.",
		}),
		Removals: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "courseplanner",
			Name:      "removals_total",
			Help:      "Confirmed removals, split by whether dependents were cascaded.",
		}, []string{"cascade"}),
		Analyses: f.NewCounter(prometheus.CounterOpts{
			Namespace: "courseplanner",
			Name:      "concentration_analyses_total",
			Help:      "Concentration progress reports computed.",
		}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "courseplanner",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveDecision counts one add decision.
func (m *Metrics) ObserveDecision(addable bool, warnings int) {
	if m == nil {
		return
	}
	switch {
	case !addable:
		m.AddDecisions.WithLabelValues(OutcomeRejected).Inc()
	case warnings > 0:
		m.AddDecisions.WithLabelValues(OutcomeWarning).Inc()
	default:
		m.AddDecisions.WithLabelValues(OutcomeValid).Inc()
	}
}

// ObserveAdded counts created plan entries.
func (m *Metrics) ObserveAdded(n int) {
	if m == nil {
		return
	}
	m.CoursesAdded.Add(float64(n))
}

// ObserveRemoval counts one confirmed removal.
func (m *Metrics) ObserveRemoval(cascaded bool) {
	if m == nil {
		return
	}
	label := "false"
	if cascaded {
		label = "true"
	}
	m.Removals.WithLabelValues(label).Inc()
}

// ObserveAnalysis counts one concentration report.
func (m *Metrics) ObserveAnalysis() {
	if m == nil {
		return
	}
	m.Analyses.Inc()
}
