// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for SubmissionsTotal.
const (
	OutcomePreflight   = "preflight"
	OutcomeAccepted    = "accepted"
	OutcomeRejected    = "rejected"
	OutcomeServerError = "server_error"
)

var (
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_submissions_total",
			Help: "Total number of form requests by outcome",
		},
		[]string{"form", "outcome"},
	)

	VerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "form_verifications_total",
			Help: "Total number of bot verification assessments by result",
		},
		[]string{"action", "result"},
	)

	PublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "form_publish_duration_seconds",
			Help:    "Duration of notification publish calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"form"},
	)
)
