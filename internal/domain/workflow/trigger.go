package workflow

// Trigger moves a form between steps
type Trigger string

const (
	// TriggerContinue advances from trip details to expenses
	TriggerContinue Trigger = "CONTINUE"
	// TriggerBack returns to the trip details
	TriggerBack Trigger = "BACK"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}

// TriggerFor picks the trigger that moves from one step to another.
// ok is false when no single trigger connects them.
func TriggerFor(from, to State) (Trigger, bool) {
	switch {
	case from == StateDetails && to == StateExpenses:
		return TriggerContinue, true
	case from == StateExpenses && to == StateDetails:
		return TriggerBack, true
	}
	return "", false
}
