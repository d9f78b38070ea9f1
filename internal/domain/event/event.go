package event

import (
	"time"

	"github.com/google/uuid"
)

// Payload keys
const (
	KeyError      = "error"
	KeyStatusCode = "status_code"
	KeyItemCount  = "item_count"
)

// Event is a form lifecycle event. Reference identifies the submitted record:
// the invoice number for trip forms, the request id for approvals.
type Event struct {
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	Form      string                 `json:"form"`
	Reference string                 `json:"reference,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewEvent creates an event stamped with a fresh id and the current time
func NewEvent(eventType Type, form, reference string) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Form:      form,
		Reference: reference,
		Payload:   map[string]interface{}{},
		Timestamp: time.Now().UTC(),
	}
}

// WithPayload returns a copy of e carrying key set to value. e is unchanged.
func (e *Event) WithPayload(key string, value interface{}) *Event {
	payload := make(map[string]interface{}, len(e.Payload)+1)
	for k, v := range e.Payload {
		payload[k] = v
	}
	payload[key] = value

	out := *e
	out.Payload = payload
	return &out
}

// GetPayloadString retrieves a string value from the payload
func (e *Event) GetPayloadString(key string) string {
	if s, ok := e.Payload[key].(string); ok {
		return s
	}
	return ""
}

// GetPayloadInt retrieves an integer value from the payload
func (e *Event) GetPayloadInt(key string) int64 {
	switch v := e.Payload[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
