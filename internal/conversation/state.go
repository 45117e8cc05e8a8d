// Package conversation tracks in-progress multi-step input flows. While a
// user has a state here, their next inbound text is structured input for
// the current step rather than a command.
package conversation

import "errors"

// Step tags what the flow expects from the user next.
type Step string

const (
	// StepAwaitingAddress waits for the recipient address of a transfer.
	StepAwaitingAddress Step = "awaiting_address"
	// StepAwaitingAmount waits for the transfer amount; terminal step.
	StepAwaitingAmount Step = "awaiting_amount"
	// StepAwaitingProjectID waits for the donation project id.
	StepAwaitingProjectID Step = "awaiting_project_id"
	// StepAwaitingDonationAmount waits for the donation amount; terminal step.
	StepAwaitingDonationAmount Step = "awaiting_donation_amount"
)

// ErrUnknownStep means a state carries a step the transition table does not
// know. The flow cannot continue and must be ended, never retried.
var ErrUnknownStep = errors.New("conversation: unknown step")

// State is the partially collected input of one flow.
type State struct {
	Step      Step
	Address   string
	Amount    string
	ProjectID string
}

// apply advances the state by one step with the given raw input. It
// returns true when the flow has collected everything and the caller
// should dispatch and end it.
func (s *State) apply(input string) (done bool, err error) {
	switch s.Step {
	case StepAwaitingAddress:
		s.Address = input
		s.Step = StepAwaitingAmount
		return false, nil
	case StepAwaitingAmount:
		s.Amount = input
		return true, nil
	case StepAwaitingProjectID:
		s.ProjectID = input
		s.Step = StepAwaitingDonationAmount
		return false, nil
	case StepAwaitingDonationAmount:
		s.Amount = input
		return true, nil
	default:
		return false, ErrUnknownStep
	}
}
