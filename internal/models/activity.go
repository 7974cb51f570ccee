// internal/models/activity.go
package models

import "time"

// ActivityKind tags a transmission-log entry.
type ActivityKind string

const (
	ActivityDraftGenerated ActivityKind = "draft_generated"
	ActivityDraftSkipped   ActivityKind = "draft_skipped"
	ActivitySendOK         ActivityKind = "send_ok"
	ActivitySendFailed     ActivityKind = "send_failed"
	ActivityRunAborted     ActivityKind = "run_aborted"
	ActivityRunScheduled   ActivityKind = "run_scheduled"
	ActivityValidatorDown  ActivityKind = "validator_degraded"
)

// ActivityEntry is one line of the per-owner transmission log. Entries are
// append-only; an aborted run surfaces its partial results here rather than
// through the campaign history view.
type ActivityEntry struct {
	ID         string       `json:"id"`
	OwnerID    string       `json:"ownerId"`
	CampaignID string       `json:"campaignId,omitempty"`
	Kind       ActivityKind `json:"kind"`
	Recipient  string       `json:"recipient,omitempty"`
	Detail     string       `json:"detail,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}
