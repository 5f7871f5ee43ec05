package models

import "errors"

// Error kinds shared across the engine. Callers match them with
// errors.Is; every failure path wraps one of these so the UI layer can
// map it to a message without string matching.
var (
	// ErrNotFound marks a lookup of an unknown event or token.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a proposed mutation that violates a domain
	// rule: a missing kind-dependent field, a reschedule into the past.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition marks an operation on an event or token whose
	// state forbids it, such as completing an already-completed event.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrTerminalState marks any operation on an applied or cancelled
	// reschedule request. Correct callers never hit it.
	ErrTerminalState = errors.New("request is in a terminal state")

	// ErrAlreadyIssued marks a second token issue for the same event.
	ErrAlreadyIssued = errors.New("review link already issued")

	// ErrAlreadyRedeemed marks a second redemption of the same token.
	ErrAlreadyRedeemed = errors.New("review already submitted")

	// ErrInvalidRange marks a date range whose start is after its end.
	ErrInvalidRange = errors.New("invalid date range")
)
