package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition is returned when a task status change is not
	// one of the allowed edges of the status state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrForbidden is returned when an actor lacks the ownership or role
	// required for the requested operation.
	ErrForbidden = errors.New("operation not permitted")
)
