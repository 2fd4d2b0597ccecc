package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveDecision(false, 0)
	m.ObserveDecision(true, 2)
	m.ObserveDecision(true, 0)
	m.ObserveDecision(true, 0)
	m.ObserveAdded(3)
	m.ObserveRemoval(true)
	m.ObserveAnalysis()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AddDecisions.WithLabelValues(OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AddDecisions.WithLabelValues(OutcomeWarning)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AddDecisions.WithLabelValues(OutcomeValid)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CoursesAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Removals.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Analyses))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveDecision(true, 0)
		m.ObserveAdded(1)
		m.ObserveRemoval(false)
		m.ObserveAnalysis()
	})
}
