// internal/models/campaign.go
package models

import "time"

// CampaignMode selects how draft content is produced.
type CampaignMode string

const (
	ModeManual   CampaignMode = "MANUAL"
	ModeAICustom CampaignMode = "AI_CUSTOM"
)

// CampaignStatus is the lifecycle status of a persisted campaign.
type CampaignStatus string

const (
	CampaignQueued    CampaignStatus = "QUEUED"
	CampaignSending   CampaignStatus = "SENDING"
	CampaignCompleted CampaignStatus = "COMPLETED"
	CampaignScheduled CampaignStatus = "SCHEDULED"
)

// CampaignStats is the outcome snapshot stored on a campaign row. The
// authoritative numbers are always recomputed from the SendRecords; this
// snapshot serves historical listing only.
type CampaignStats struct {
	Total   int `json:"total"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Pending int `json:"pending"`
	Opened  int `json:"opened"`
}

// Campaign is a named, dispatched (or scheduled) batch of drafts. A campaign
// row is created once, at dispatch-commit time, and its id is never reused.
type Campaign struct {
	ID             string         `json:"id"`
	OwnerID        string         `json:"ownerId"`
	Name           string         `json:"name"`
	Mode           CampaignMode   `json:"mode"`
	SenderIdentity string         `json:"senderIdentity"`
	ScheduledAt    *time.Time     `json:"scheduledAt,omitempty"`
	Stats          CampaignStats  `json:"stats"`
	Status         CampaignStatus `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
}
