package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType_IsValid(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		want      bool
	}{
		{"submitted", TypeFormSubmitted, true},
		{"failed", TypeSubmissionFailed, true},
		{"unknown", Type("form.deleted"), false},
		{"empty", Type(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.eventType.IsValid())
		})
	}
	assert.Equal(t, "form.submission_failed", TypeSubmissionFailed.String())
}

func TestNewEvent(t *testing.T) {
	a := NewEvent(TypeFormSubmitted, "notification", "iSSi-EXP-BMS-JD-250512")
	b := NewEvent(TypeFormSubmitted, "notification", "iSSi-EXP-BMS-JD-250512")

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "notification", a.Form)
	assert.Equal(t, "iSSi-EXP-BMS-JD-250512", a.Reference)
	assert.False(t, a.Timestamp.IsZero())
	assert.NotNil(t, a.Payload)
}

func TestEvent_WithPayloadIsImmutable(t *testing.T) {
	base := NewEvent(TypeSubmissionFailed, "approval", "REQ-1")
	withErr := base.WithPayload(KeyError, "rejected")
	withCode := withErr.WithPayload(KeyStatusCode, 502)

	assert.Empty(t, base.Payload)
	assert.Equal(t, "rejected", withErr.GetPayloadString(KeyError))
	assert.Zero(t, withErr.GetPayloadInt(KeyStatusCode))
	assert.Equal(t, int64(502), withCode.GetPayloadInt(KeyStatusCode))
	assert.Equal(t, base.ID, withCode.ID)
}

func TestEvent_PayloadGetters(t *testing.T) {
	evt := NewEvent(TypeFormSubmitted, "expense_report", "X").
		WithPayload(KeyItemCount, float64(3)).
		WithPayload("flag", true)

	assert.Equal(t, int64(3), evt.GetPayloadInt(KeyItemCount))
	assert.Empty(t, evt.GetPayloadString("flag"))
	assert.Empty(t, evt.GetPayloadString("missing"))
	assert.Zero(t, evt.GetPayloadInt("missing"))
}
