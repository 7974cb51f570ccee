// internal/campaign/machine.go
package campaign

import (
	"fmt"

	"outreach-engine/internal/common/errors"
)

// State is one step of the campaign lifecycle.
type State string

const (
	StateHistory        State = "HISTORY"
	StateAuthGate       State = "AUTH_GATE"
	StateIntake         State = "INTAKE"
	StateValidation     State = "VALIDATION"
	StateOptions        State = "OPTIONS"
	StateConfig         State = "CONFIG"
	StateGenerating     State = "GENERATING"
	StateReview         State = "REVIEW"
	StateSending        State = "SENDING"
	StateSummary        State = "SUMMARY"
	StateCampaignDetail State = "CAMPAIGN_DETAIL"
)

// validTransitions is the full transition relation of the lifecycle. Guards
// on inputs are enforced by the operations themselves; this map only rules
// out impossible jumps.
var validTransitions = map[State][]State{
	StateHistory:        {StateAuthGate, StateIntake, StateCampaignDetail},
	StateAuthGate:       {StateIntake},
	StateIntake:         {StateValidation},
	StateValidation:     {StateOptions},
	StateOptions:        {StateConfig},
	StateConfig:         {StateGenerating},
	StateGenerating:     {StateReview, StateOptions},
	StateReview:         {StateSending, StateSummary},
	StateSending:        {StateSummary},
	StateSummary:        {StateHistory},
	StateCampaignDetail: {StateHistory},
}

// transition moves the run to next, rejecting anything outside the relation.
func (r *Run) transition(next State) error {
	for _, allowed := range validTransitions[r.state] {
		if allowed == next {
			r.state = next
			return nil
		}
	}
	return errors.NewGuardViolationError(
		fmt.Sprintf("cannot move from %s to %s", r.state, next))
}

// requireState rejects an operation invoked outside its home state.
func (r *Run) requireState(want State, op string) error {
	if r.state != want {
		return errors.NewGuardViolationError(
			fmt.Sprintf("%s requires state %s, current state is %s", op, want, r.state))
	}
	return nil
}

// State returns the run's current lifecycle state.
func (r *Run) State() State {
	return r.state
}
