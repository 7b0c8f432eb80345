package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ResponsesSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "recruitment_responses_submitted_total", Help: "Total accepted recruitment submissions"},
	)
	SubmissionsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recruitment_submissions_rejected_total", Help: "Submissions refused before storage, by reason"},
		[]string{"reason"},
	)
	ResponsesReviewed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "recruitment_responses_reviewed_total", Help: "Review updates, by resulting status"},
		[]string{"status"},
	)
	ResponsesDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "recruitment_responses_deleted_total", Help: "Total deleted recruitment responses"},
	)
	NotificationFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "recruitment_notification_failures_total", Help: "Acceptance notifications that could not be delivered"},
	)
	CleanupFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "recruitment_cleanup_failures_total", Help: "Attachment prefixes that could not be removed"},
	)
	CounterDrift = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "recruitment_counter_drift_total", Help: "Form counters corrected by reconciliation"},
	)
	OrphanResponses = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "recruitment_orphan_responses", Help: "Responses whose form no longer exists, as of the last scan"},
	)
	HTTPRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request latency", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more
// than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ResponsesSubmitted,
			SubmissionsRejected,
			ResponsesReviewed,
			ResponsesDeleted,
			NotificationFailures,
			CleanupFailures,
			CounterDrift,
			OrphanResponses,
			HTTPRequests,
		)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
