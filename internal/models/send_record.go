// internal/models/send_record.go
package models

import "time"

// SendOutcome is the terminal result of one dispatch attempt. Outcomes never
// transition once written; only the opened flag mutates afterwards.
type SendOutcome string

const (
	OutcomeSent      SendOutcome = "SENT"
	OutcomeFailed    SendOutcome = "FAILED"
	OutcomeScheduled SendOutcome = "SCHEDULED"
)

// SendRecord is the durable, append-only result of one dispatch attempt (or
// scheduling commitment) for one draft. The id is transport-assigned on a
// successful send and locally generated otherwise.
type SendRecord struct {
	ID             string      `json:"id"`
	CampaignID     string      `json:"campaignId"`
	RecipientEmail string      `json:"recipientEmail"`
	BusinessName   string      `json:"businessName"`
	Website        string      `json:"website,omitempty"`
	Subject        string      `json:"subject"`
	Body           string      `json:"body"`
	Outcome        SendOutcome `json:"outcome"`
	Error          string      `json:"error,omitempty"`
	Opened         bool        `json:"opened"`
	OpenedAt       *time.Time  `json:"openedAt,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	ScheduledFor   *time.Time  `json:"scheduledFor,omitempty"`
}
