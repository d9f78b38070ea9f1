// Package dispatcher fans form lifecycle events out to subscribed handlers.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/garyjia/travel-forms/internal/domain/event"
)

// ErrClosed is returned when closing a dispatcher twice
var ErrClosed = errors.New("dispatcher is closed")

// Dispatcher routes events to registered handlers
type Dispatcher interface {
	// Subscribe registers a named handler for an event type. It panics on an
	// unknown type.
	Subscribe(eventType event.Type, name string, handler Handler)
	// Publish runs every handler in the background. Handlers outlive the
	// caller's context cancellation. Events of unknown type and events
	// published after Close are dropped and logged.
	Publish(ctx context.Context, evt *event.Event)
	// Handlers lists the handler names subscribed to an event type
	Handlers(eventType event.Type) []string
	// Close stops accepting events and waits for background handlers
	Close() error
}

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// mu guards handlers and closed. wg.Add only happens under mu so that Close,
// which sets closed under the write lock, waits for every accepted event.
type eventDispatcher struct {
	mu       sync.RWMutex
	handlers map[event.Type][]HandlerInfo
	closed   bool
	logger   Logger

	wg sync.WaitGroup
}

// Option configures the dispatcher
type Option func(*eventDispatcher)

// WithLogger sets a logger for the dispatcher
func WithLogger(logger Logger) Option {
	return func(d *eventDispatcher) {
		d.logger = logger
	}
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(opts ...Option) Dispatcher {
	d := &eventDispatcher{
		handlers: make(map[event.Type][]HandlerInfo),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *eventDispatcher) Subscribe(eventType event.Type, name string, handler Handler) {
	if !eventType.IsValid() {
		panic(fmt.Sprintf("invalid event type: %s", eventType))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventType] = append(d.handlers[eventType], HandlerInfo{
		Name:      name,
		EventType: eventType,
		Handler:   handler,
	})

	if d.logger != nil {
		d.logger.Info("Handler subscribed", "event_type", eventType, "handler", name)
	}
}

func (d *eventDispatcher) snapshot(eventType event.Type) []HandlerInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]HandlerInfo(nil), d.handlers[eventType]...)
}

func (d *eventDispatcher) Publish(ctx context.Context, evt *event.Event) {
	if !evt.Type.IsValid() {
		d.drop(evt, "Event dropped, unknown type")
		return
	}

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		d.drop(evt, "Event dropped, dispatcher is closed")
		return
	}
	handlers := append([]HandlerInfo(nil), d.handlers[evt.Type]...)
	d.wg.Add(len(handlers))
	d.mu.RUnlock()

	ctx = context.WithoutCancel(ctx)
	for _, info := range handlers {
		go func(h HandlerInfo) {
			defer d.wg.Done()
			_ = d.run(ctx, evt, h)
		}(info)
	}
}

func (d *eventDispatcher) drop(evt *event.Event, msg string) {
	if d.logger != nil {
		d.logger.Error(msg, "event_type", evt.Type, "event_id", evt.ID)
	}
}

func (d *eventDispatcher) Handlers(eventType event.Type) []string {
	infos := d.snapshot(eventType)
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

func (d *eventDispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.closed = true
	d.mu.Unlock()

	d.wg.Wait()

	if d.logger != nil {
		d.logger.Info("Dispatcher closed")
	}
	return nil
}

// run executes one handler, turning a panic into an error
func (d *eventDispatcher) run(ctx context.Context, evt *event.Event, info HandlerInfo) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
		if err != nil && d.logger != nil {
			d.logger.Error("Event handler failed",
				"event_type", evt.Type,
				"event_id", evt.ID,
				"handler", info.Name,
				"error", err,
			)
		}
	}()

	return info.Handler(ctx, evt)
}
