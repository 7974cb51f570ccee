// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_emails_sent_total",
			Help: "Total number of emails accepted by the transport",
		},
		[]string{"provider"},
	)

	EmailsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_emails_failed_total",
			Help: "Total number of dispatch attempts the transport rejected",
		},
		[]string{"provider"},
	)

	DraftsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_drafts_generated_total",
			Help: "Total number of drafts produced by the generator",
		},
		[]string{"mode"},
	)

	DraftsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_drafts_skipped_total",
			Help: "Total number of leads skipped during draft generation",
		},
		[]string{"mode"},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "outreach_run_phase_duration_seconds",
			Help: "Duration of campaign run phases in seconds",
		},
		[]string{"phase"},
	)

	RunsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "outreach_runs_active",
			Help: "Number of campaign runs currently in a loop phase",
		},
	)
)
