package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "talentmatch",
			Subsystem: "applications",
			Name:      "status_transitions_total",
			Help:      "Application status transition attempts by outcome.",
		},
		[]string{"outcome"},
	)

	matchesComputedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "talentmatch",
			Subsystem: "matching",
			Name:      "scores_computed_total",
			Help:      "Match scores computed across all call paths.",
		},
	)

	matchScoreObserved = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "talentmatch",
			Subsystem: "matching",
			Name:      "score_distribution",
			Help:      "Distribution of computed match scores.",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

const (
	OutcomeSuccess  = "success"
	OutcomeInvalid  = "invalid_transition"
	OutcomeConflict = "concurrent_modification"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(transitionsTotal, matchesComputedTotal, matchScoreObserved)
	})
}

func RecordTransition(outcome string) {
	transitionsTotal.WithLabelValues(outcome).Inc()
}

func RecordMatchScore(score int) {
	matchesComputedTotal.Inc()
	matchScoreObserved.Observe(float64(score))
}
