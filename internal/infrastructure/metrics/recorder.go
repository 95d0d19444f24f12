package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements port.MetricsRecorder on Prometheus collectors.
type Recorder struct {
	outcomes     *prometheus.CounterVec
	creditScores prometheus.Histogram
	latency      prometheus.Histogram
	submissions  prometheus.Counter
}

// NewRecorder registers the pre-qualification collectors with reg, or the
// default registry when reg is nil.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Recorder{
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "prequal_decisions_total",
			Help: "Pre-qualification decisions by status",
		}, []string{"status"}),

		creditScores: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prequal_credit_score",
			Help:    "Credit score used for each pre-qualification",
			Buckets: []float64{580, 620, 660, 680, 700, 720, 740, 760, 800},
		}),

		latency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prequal_evaluate_duration_seconds",
			Help:    "Duration of a pre-qualification including persistence",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		submissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "prequal_applications_submitted_total",
			Help: "Loan applications moved from draft to submitted",
		}),
	}
}

func (r *Recorder) RecordPreQualification(_ context.Context, status string, creditScore int, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(status).Inc()
	r.creditScores.Observe(float64(creditScore))
	r.latency.Observe(elapsed.Seconds())
}

func (r *Recorder) RecordApplicationSubmitted(_ context.Context) {
	if r == nil {
		return
	}
	r.submissions.Inc()
}
