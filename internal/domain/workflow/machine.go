package workflow

import "context"

// StateMachine tracks the current step of a form and validates step changes
type StateMachine interface {
	// State returns the current step
	State() State

	// CanFire returns true if the trigger is configured for the current step.
	// Guards are not evaluated.
	CanFire(trigger Trigger) bool

	// Fire runs the trigger, moving to the target step when a guard passes
	Fire(ctx context.Context, trigger Trigger) error
}
