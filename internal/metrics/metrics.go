// Package metrics defines Prometheus collectors for assessments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the assessment collectors registered on one registry.
type Recorder struct {
	AssessmentsCompleted *prometheus.CounterVec
	AssessmentsRejected  *prometheus.CounterVec
	OverallPercentage    prometheus.Histogram
	AnswersPerAssessment prometheus.Histogram
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		AssessmentsCompleted: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "innoscore_assessments_completed_total",
				Help: "Total number of completed assessments by maturity tier",
			},
			[]string{"tier"},
		),
		AssessmentsRejected: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "innoscore_assessments_rejected_total",
				Help: "Total number of assessments that failed, by error kind",
			},
			[]string{"kind"},
		),
		OverallPercentage: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "innoscore_overall_percentage",
				Help:    "Distribution of overall maturity percentages",
				Buckets: []float64{25, 40, 55, 70, 85, 100},
			},
		),
		AnswersPerAssessment: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "innoscore_answers_per_assessment",
				Help:    "Number of answers submitted per assessment",
				Buckets: prometheus.LinearBuckets(0, 5, 6),
			},
		),
	}
}

// Completed records a successful assessment.
func (r *Recorder) Completed(tier string, pct float64, answers int) {
	r.AssessmentsCompleted.WithLabelValues(tier).Inc()
	r.OverallPercentage.Observe(pct)
	r.AnswersPerAssessment.Observe(float64(answers))
}

// Rejected records a failed assessment by kind: "request", "validation", "range" or "internal".
func (r *Recorder) Rejected(kind string) {
	r.AssessmentsRejected.WithLabelValues(kind).Inc()
}
