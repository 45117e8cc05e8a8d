package services

import (
	"errors"
	"fmt"
)

// Class buckets a failure for user-facing rendering. User input failures
// keep or reset the flow with a retry prompt; external failures abort the
// flow with a generic message; timeouts and cancellations render distinct
// messages; protocol failures are fatal to the current operation only.
type Class int

const (
	ClassExternal Class = iota
	ClassUserInput
	ClassTimeout
	ClassCanceled
	ClassProtocol
)

// FlowError is a classified failure of one user-triggered operation.
type FlowError struct {
	Class   Class
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// UserInputErr marks a failure caused by unusable user input.
func UserInputErr(message string) *FlowError {
	return &FlowError{Class: ClassUserInput, Message: message}
}

// ExternalErr marks a collaborator failure (messaging, custodial API, RPC).
func ExternalErr(message string, err error) *FlowError {
	return &FlowError{Class: ClassExternal, Message: message, Err: err}
}

// TimeoutErr marks an operation that ran out of wall-clock time.
func TimeoutErr(message string) *FlowError {
	return &FlowError{Class: ClassTimeout, Message: message}
}

// CanceledErr marks an operation the user explicitly canceled in a wallet.
func CanceledErr(message string) *FlowError {
	return &FlowError{Class: ClassCanceled, Message: message}
}

// ProtocolErr marks an internal inconsistency such as an unknown wallet
// kind or a missing session topic.
func ProtocolErr(message string) *FlowError {
	return &FlowError{Class: ClassProtocol, Message: message}
}

// ErrNotConnected is returned by dispatch operations when the user has no
// wallet binding.
var ErrNotConnected = errors.New("services: no wallet connected")

// Comparable user-input failures, so the router can render targeted retry
// prompts with errors.Is.
var (
	ErrInvalidAmount    = UserInputErr("invalid amount")
	ErrInvalidProjectID = UserInputErr("invalid project id")
)

// ClassOf extracts the failure class, defaulting to external.
func ClassOf(err error) Class {
	var flowErr *FlowError
	if errors.As(err, &flowErr) {
		return flowErr.Class
	}
	return ClassExternal
}
