// internal/campaign/stats_test.go
package campaign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"outreach-engine/internal/models"
)

func record(outcome models.SendOutcome, opened bool) models.SendRecord {
	r := models.SendRecord{Outcome: outcome, Opened: opened}
	if opened {
		at := time.Now()
		r.OpenedAt = &at
	}
	return r
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name    string
		records []models.SendRecord
		want    Stats
	}{
		{
			name:    "no records",
			records: nil,
			want:    Stats{},
		},
		{
			name: "all sent none opened",
			records: []models.SendRecord{
				record(models.OutcomeSent, false),
				record(models.OutcomeSent, false),
			},
			want: Stats{Total: 2, Sent: 2, SuccessRate: 100},
		},
		{
			name: "mixed outcomes",
			records: []models.SendRecord{
				record(models.OutcomeSent, true),
				record(models.OutcomeSent, false),
				record(models.OutcomeFailed, false),
			},
			want: Stats{Total: 3, Sent: 2, Failed: 1, Opened: 1, SuccessRate: 67, OpenRate: 50},
		},
		{
			name: "scheduled records count as pending",
			records: []models.SendRecord{
				record(models.OutcomeScheduled, false),
				record(models.OutcomeScheduled, false),
				record(models.OutcomeScheduled, false),
			},
			want: Stats{Total: 3, Pending: 3},
		},
		{
			name: "one of three sent rounds down",
			records: []models.SendRecord{
				record(models.OutcomeSent, false),
				record(models.OutcomeFailed, false),
				record(models.OutcomeFailed, false),
			},
			want: Stats{Total: 3, Sent: 1, Failed: 2, SuccessRate: 33},
		},
		{
			name: "half opened rounds to nearest",
			records: []models.SendRecord{
				record(models.OutcomeSent, true),
				record(models.OutcomeSent, true),
				record(models.OutcomeSent, true),
				record(models.OutcomeSent, false),
				record(models.OutcomeSent, false),
				record(models.OutcomeSent, false),
				record(models.OutcomeFailed, false),
			},
			want: Stats{Total: 7, Sent: 6, Failed: 1, Opened: 3, SuccessRate: 86, OpenRate: 50},
		},
		{
			name: "all failed has zero open rate",
			records: []models.SendRecord{
				record(models.OutcomeFailed, false),
			},
			want: Stats{Total: 1, Failed: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStats(tt.records))
		})
	}
}

func TestStats_Snapshot(t *testing.T) {
	s := Stats{Total: 5, Sent: 3, Failed: 1, Pending: 1, Opened: 2, SuccessRate: 60, OpenRate: 67}
	snap := s.Snapshot()
	assert.Equal(t, models.CampaignStats{Total: 5, Sent: 3, Failed: 1, Pending: 1, Opened: 2}, snap)
}
