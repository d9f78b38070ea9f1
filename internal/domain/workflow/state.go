package workflow

// State is a step of a multi-step form
type State string

const (
	// StateDetails is the trip details tab
	StateDetails State = "details"
	// StateExpenses is the itemized expenses tab
	StateExpenses State = "expenses"
)

var validStates = map[State]bool{
	StateDetails:  true,
	StateExpenses: true,
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a known form step
func (s State) IsValid() bool {
	return validStates[s]
}
