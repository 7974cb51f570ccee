// internal/campaign/machine_test.go
package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_ValidMoves(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
	}{
		{"history to auth gate", StateHistory, StateAuthGate},
		{"history to intake", StateHistory, StateIntake},
		{"history to detail", StateHistory, StateCampaignDetail},
		{"auth gate to intake", StateAuthGate, StateIntake},
		{"intake to validation", StateIntake, StateValidation},
		{"validation to options", StateValidation, StateOptions},
		{"options to config", StateOptions, StateConfig},
		{"config to generating", StateConfig, StateGenerating},
		{"generating to review", StateGenerating, StateReview},
		{"generating back to options", StateGenerating, StateOptions},
		{"review to sending", StateReview, StateSending},
		{"review to summary", StateReview, StateSummary},
		{"sending to summary", StateSending, StateSummary},
		{"summary to history", StateSummary, StateHistory},
		{"detail to history", StateCampaignDetail, StateHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{state: tt.from}
			require.NoError(t, run.transition(tt.to))
			assert.Equal(t, tt.to, run.State())
		})
	}
}

func TestTransition_InvalidMoves(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
	}{
		{"skip intake", StateHistory, StateValidation},
		{"skip generation", StateConfig, StateReview},
		{"backwards from sending", StateSending, StateReview},
		{"summary cannot re-enter sending", StateSummary, StateSending},
		{"validation cannot return to intake", StateValidation, StateIntake},
		{"sending cannot jump to history", StateSending, StateHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := &Run{state: tt.from}
			err := run.transition(tt.to)
			require.Error(t, err)
			assert.Equal(t, tt.from, run.State(), "state must not change on a rejected move")
		})
	}
}

func TestCanceller(t *testing.T) {
	c := NewCanceller()
	assert.False(t, c.Cancelled())

	c.Cancel()
	assert.True(t, c.Cancelled())

	// Cancellation is sticky.
	c.Cancel()
	assert.True(t, c.Cancelled())

	var nilToken *Canceller
	assert.False(t, nilToken.Cancelled())
}
