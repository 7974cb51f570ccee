// internal/campaign/stats.go
package campaign

import (
	"math"

	"outreach-engine/internal/models"
)

// Stats is the derived outcome aggregation for one campaign. It is always
// recomputed from the send records on read; the snapshot stored on the
// campaign row is used for historical listing only.
type Stats struct {
	Total       int `json:"total"`
	Sent        int `json:"sent"`
	Failed      int `json:"failed"`
	Pending     int `json:"pending"`
	Opened      int `json:"opened"`
	SuccessRate int `json:"successRate"`
	OpenRate    int `json:"openRate"`
}

// ComputeStats aggregates a campaign's send records.
func ComputeStats(records []models.SendRecord) Stats {
	s := Stats{Total: len(records)}
	for _, r := range records {
		switch r.Outcome {
		case models.OutcomeSent:
			s.Sent++
		case models.OutcomeFailed:
			s.Failed++
		case models.OutcomeScheduled:
			s.Pending++
		}
		if r.Opened {
			s.Opened++
		}
	}
	if s.Total > 0 {
		s.SuccessRate = roundPercent(s.Sent, s.Total)
	}
	if s.Sent > 0 {
		s.OpenRate = roundPercent(s.Opened, s.Sent)
	}
	return s
}

// Snapshot converts the aggregation into the persisted campaign stats form.
func (s Stats) Snapshot() models.CampaignStats {
	return models.CampaignStats{
		Total:   s.Total,
		Sent:    s.Sent,
		Failed:  s.Failed,
		Pending: s.Pending,
		Opened:  s.Opened,
	}
}

func roundPercent(part, whole int) int {
	return int(math.Round(100 * float64(part) / float64(whole)))
}
