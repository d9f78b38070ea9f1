package dispatcher

import (
	"context"

	"github.com/garyjia/travel-forms/internal/domain/event"
)

// Handler processes domain events
type Handler func(ctx context.Context, evt *event.Event) error

// HandlerInfo describes a subscribed handler
type HandlerInfo struct {
	Name      string
	EventType event.Type
	Handler   Handler
}
