package dispatcher

import (
	"context"

	"github.com/garyjia/travel-forms/internal/domain/event"
)

// AuditLog returns a handler that records every form event in the log
func AuditLog(logger Logger) Handler {
	return func(_ context.Context, evt *event.Event) error {
		fields := []interface{}{
			"event_id", evt.ID,
			"form", evt.Form,
			"reference", evt.Reference,
			"at", evt.Timestamp,
		}
		if n := evt.GetPayloadInt(event.KeyItemCount); n > 0 {
			fields = append(fields, event.KeyItemCount, n)
		}

		if evt.Type == event.TypeSubmissionFailed {
			fields = append(fields, event.KeyError, evt.GetPayloadString(event.KeyError))
			if code := evt.GetPayloadInt(event.KeyStatusCode); code != 0 {
				fields = append(fields, event.KeyStatusCode, code)
			}
			logger.Error("Form submission failed", fields...)
			return nil
		}
		logger.Info("Form submitted", fields...)
		return nil
	}
}
