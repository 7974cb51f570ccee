// internal/models/draft.go
package models

// DraftContent is the subject/body pair produced by the draft generator.
type DraftContent struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Draft is generated or templated email content bound to one non-INVALID
// lead. Subject and body may be hand-edited during review; once dispatch
// begins the draft is immutable.
type Draft struct {
	ID             string `json:"id"`
	RecipientEmail string `json:"recipientEmail"`
	BusinessName   string `json:"businessName"`
	Website        string `json:"website,omitempty"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
}
