// internal/genai/validator.go
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"outreach-engine/internal/models"
)

const validatorSystemPrompt = `You are an email deliverability checker. ` +
	`For every address in the batch, classify it as "valid", "risky" or "invalid" ` +
	`based on syntax, domain plausibility and role-account heuristics. ` +
	`Respond with a JSON array only, one object per address: ` +
	`[{"email": "...", "status": "valid|risky|invalid", "reason": "..."}]`

// Validator classifies lead emails through the AI provider in one batch call.
type Validator struct {
	client *Client
}

func NewValidator(client *Client) *Validator {
	return &Validator{client: client}
}

type validationResult struct {
	Email  string `json:"email"`
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// ValidateLeads classifies the whole batch in a single provider call and
// returns the same leads with validation state populated. Leads the provider
// does not mention stay UNCHECKED. An error means the batch was not
// classified at all; the caller decides how to degrade.
func (v *Validator) ValidateLeads(ctx context.Context, leads []models.Lead) ([]models.Lead, error) {
	if len(leads) == 0 {
		return leads, nil
	}

	emails := make([]string, len(leads))
	for i, l := range leads {
		emails[i] = l.Email
	}

	raw, err := v.client.complete(ctx, validatorSystemPrompt,
		fmt.Sprintf("Classify these addresses:\n%s", strings.Join(emails, "\n")))
	if err != nil {
		return nil, err
	}

	doc := stripCodeFence(raw)
	if err := validateAgainstSchema(validationResultSchema, doc); err != nil {
		return nil, err
	}

	var results []validationResult
	if err := json.Unmarshal([]byte(doc), &results); err != nil {
		return nil, fmt.Errorf("decode validation results: %w", err)
	}

	byEmail := make(map[string]validationResult, len(results))
	for _, r := range results {
		byEmail[strings.ToLower(strings.TrimSpace(r.Email))] = r
	}

	out := make([]models.Lead, len(leads))
	copy(out, leads)
	for i := range out {
		r, ok := byEmail[strings.ToLower(out[i].Email)]
		if !ok {
			out[i].ValidationState = models.ValidationUnchecked
			continue
		}
		switch r.Status {
		case "valid":
			out[i].ValidationState = models.ValidationValid
		case "risky":
			out[i].ValidationState = models.ValidationRisky
		case "invalid":
			out[i].ValidationState = models.ValidationInvalid
		default:
			out[i].ValidationState = models.ValidationUnchecked
		}
		out[i].ValidationReason = r.Reason
	}

	return out, nil
}
