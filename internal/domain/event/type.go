package event

// Type identifies the type of domain event
type Type string

const (
	// TypeFormSubmitted is raised after an endpoint accepted a form
	TypeFormSubmitted Type = "form.submitted"
	// TypeSubmissionFailed is raised when a form could not be delivered or
	// was rejected by its endpoint
	TypeSubmissionFailed Type = "form.submission_failed"
)

// String returns the string representation of the event type
func (t Type) String() string {
	return string(t)
}

// IsValid checks if the event type is one of the defined constants
func (t Type) IsValid() bool {
	switch t {
	case TypeFormSubmitted, TypeSubmissionFailed:
		return true
	default:
		return false
	}
}
