package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quizbank"

var (
	// RecordsImported counts records upserted by build passes.
	RecordsImported = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_imported_total",
		Help:      "Question records upserted by document imports.",
	})

	// BlocksSkipped counts malformed question blocks dropped during parsing.
	BlocksSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "blocks_skipped_total",
		Help:      "Question blocks dropped during parsing, by reason.",
	}, []string{"reason"})

	// RoundsStarted counts sampled rounds, split by whether a seed was supplied.
	RoundsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rounds_started_total",
		Help:      "Quiz rounds sampled from the store.",
	}, []string{"seeded"})

	// AnswersGraded counts grading verdicts.
	AnswersGraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_graded_total",
		Help:      "Answers graded, by verdict.",
	}, []string{"verdict"})

	// HTTPRequestDuration observes API latency per route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "status"})
)

// Verdict returns the label value for a grading outcome.
func Verdict(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}

// Seeded returns the label value for a round's seed presence.
func Seeded(seed *int64) string {
	if seed != nil {
		return "true"
	}
	return "false"
}
