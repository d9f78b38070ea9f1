package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when a step change is not allowed
	ErrInvalidTransition = errors.New("invalid step transition")

	// ErrGuardFailed is returned when the current step does not validate
	ErrGuardFailed = errors.New("guard condition failed")
)
