package dispatcher

import (
	"context"
	"errors"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/event"
)

// Submitter wraps a FormSubmitter and publishes a lifecycle event for every
// delivery attempt
type Submitter struct {
	next   port.FormSubmitter
	events Dispatcher
}

// NewSubmitter creates a publishing Submitter around next
func NewSubmitter(next port.FormSubmitter, events Dispatcher) *Submitter {
	return &Submitter{next: next, events: events}
}

// Submit delivers payload through the wrapped submitter and reports the
// outcome as a form.submitted or form.submission_failed event
func (s *Submitter) Submit(ctx context.Context, form port.Form, payload interface{}) error {
	err := s.next.Submit(ctx, form, payload)

	var reference string
	if r, ok := payload.(port.Referenced); ok {
		reference = r.Reference()
	}

	evt := event.NewEvent(event.TypeFormSubmitted, string(form), reference)
	if counted, ok := payload.(interface{ ItemCount() int }); ok {
		evt = evt.WithPayload(event.KeyItemCount, counted.ItemCount())
	}
	if err != nil {
		evt.Type = event.TypeSubmissionFailed
		evt = evt.WithPayload(event.KeyError, err.Error())
		var rej *port.RejectionError
		if errors.As(err, &rej) {
			evt = evt.WithPayload(event.KeyStatusCode, rej.StatusCode)
		}
	}

	s.events.Publish(ctx, evt)
	return err
}
