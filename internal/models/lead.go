// internal/models/lead.go
package models

// ValidationState classifies the deliverability of a lead's email address.
type ValidationState string

const (
	ValidationUnchecked ValidationState = "UNCHECKED"
	ValidationValid     ValidationState = "VALID"
	ValidationRisky     ValidationState = "RISKY"
	ValidationInvalid   ValidationState = "INVALID"
)

// Lead is a prospective contact harvested externally. Leads are created at
// intake, classified in place by the validator and never deleted — INVALID
// leads are only filtered out of downstream drafting.
type Lead struct {
	Email              string          `json:"email"`
	BusinessName       string          `json:"businessName,omitempty"`
	Website            string          `json:"website,omitempty"`
	SupplementaryNotes string          `json:"supplementaryNotes,omitempty"`
	ValidationState    ValidationState `json:"validationState"`
	ValidationReason   string          `json:"validationReason,omitempty"`
}

// Eligible reports whether the lead may receive a draft.
func (l Lead) Eligible() bool {
	return l.ValidationState != ValidationInvalid
}
