// internal/genai/validator_test.go
package genai

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach-engine/internal/models"
)

func validatorLeads() []models.Lead {
	return []models.Lead{
		{Email: "good@example.com"},
		{Email: "maybe@example.com"},
		{Email: "bogus@nope.invalid"},
	}
}

func TestValidator_ClassifiesBatch(t *testing.T) {
	srv := newFakeProvider(t, func() (string, int) {
		return `[
			{"email": "good@example.com", "status": "valid", "reason": "clean mailbox"},
			{"email": "MAYBE@example.com", "status": "risky", "reason": "role account"},
			{"email": "bogus@nope.invalid", "status": "invalid", "reason": "dead domain"}
		]`, http.StatusOK
	})
	v := NewValidator(newTestClient(t, srv))

	out, err := v.ValidateLeads(context.Background(), validatorLeads())
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, models.ValidationValid, out[0].ValidationState)
	assert.Equal(t, "clean mailbox", out[0].ValidationReason)
	// Email matching is case-insensitive.
	assert.Equal(t, models.ValidationRisky, out[1].ValidationState)
	assert.Equal(t, models.ValidationInvalid, out[2].ValidationState)
}

func TestValidator_UnmentionedLeadsStayUnchecked(t *testing.T) {
	srv := newFakeProvider(t, func() (string, int) {
		return `[{"email": "good@example.com", "status": "valid"}]`, http.StatusOK
	})
	v := NewValidator(newTestClient(t, srv))

	out, err := v.ValidateLeads(context.Background(), validatorLeads())
	require.NoError(t, err)
	assert.Equal(t, models.ValidationValid, out[0].ValidationState)
	assert.Equal(t, models.ValidationUnchecked, out[1].ValidationState)
	assert.Equal(t, models.ValidationUnchecked, out[2].ValidationState)
}

func TestValidator_MalformedResponseIsAnError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not an array", `{"email": "good@example.com", "status": "valid"}`},
		{"bad status value", `[{"email": "good@example.com", "status": "excellent"}]`},
		{"prose", "these all look fine to me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeProvider(t, func() (string, int) {
				return tt.content, http.StatusOK
			})
			v := NewValidator(newTestClient(t, srv))

			_, err := v.ValidateLeads(context.Background(), validatorLeads())
			require.Error(t, err)
		})
	}
}

func TestValidator_ProviderFailureIsAnError(t *testing.T) {
	srv := newFakeProvider(t, func() (string, int) {
		return "", http.StatusBadGateway
	})
	v := NewValidator(newTestClient(t, srv))

	_, err := v.ValidateLeads(context.Background(), validatorLeads())
	require.Error(t, err)
}

func TestValidator_EmptyBatchIsANoOp(t *testing.T) {
	srv := newFakeProvider(t, func() (string, int) {
		t.Error("provider must not be called for an empty batch")
		return "", http.StatusOK
	})
	v := NewValidator(newTestClient(t, srv))

	out, err := v.ValidateLeads(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}
