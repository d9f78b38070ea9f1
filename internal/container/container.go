package container

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/travel-forms/internal/application/dispatcher"
	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/application/service"
	"github.com/garyjia/travel-forms/internal/domain/event"
	"github.com/garyjia/travel-forms/internal/infrastructure/draftstore"
	"github.com/garyjia/travel-forms/internal/infrastructure/metrics"
	"github.com/garyjia/travel-forms/internal/infrastructure/worker"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in order and torn down in reverse.
type Container struct {
	config *Config
	logger *zap.Logger

	// Infrastructure
	events   dispatcher.Dispatcher
	external *ExternalBundle
	encoder  port.ReceiptEncoder
	drafts   *draftstore.MemoryStore
	exporter port.ReportExporter
	metrics  *metrics.Metrics

	// Application
	services *ServiceBundle

	// Workers
	workers *worker.Manager

	// Lifecycle
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	ready  atomic.Bool
	closed atomic.Bool
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Notification   service.NotificationService
	Approval       service.ApprovalService
	InvoiceRequest service.InvoiceRequestService
	ExpenseReport  service.ExpenseReportService
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components in dependency order:
// 1. Event dispatcher and external clients (endpoint, Lark)
// 2. Receipt encoder, draft store, exporter and metrics
// 3. Application services
// 4. Workers
//
// When a step fails, everything started so far is torn down and Start may be
// called again.
func (c *Container) Start(ctx context.Context) (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.logger.Info("Starting container initialization")
	defer func() {
		if err != nil {
			c.logger.Error("Container start failed", zap.Error(err))
			c.teardown()
		}
	}()

	c.events = ProvideEvents(c.logger)

	external, err := ProvideExternal(&c.config.Endpoint, &c.config.Lark, c.events, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize external clients: %w", err)
	}
	c.external = external

	if err := c.initInfrastructure(); err != nil {
		return fmt.Errorf("failed to initialize infrastructure: %w", err)
	}

	m, err := ProvideMetrics(c.events, c.drafts)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	c.metrics = m

	services, err := ProvideServices(&ServiceDeps{
		External: c.external,
		Drafts:   c.drafts,
		Encoder:  c.encoder,
		Exporter: c.exporter,
		Forms:    &c.config.Forms,
		Logger:   c.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.services = services

	workers, err := ProvideWorkers(&c.config.Drafts, c.drafts, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize workers: %w", err)
	}
	if err := c.ctx.Err(); err != nil {
		return fmt.Errorf("start aborted: %w", err)
	}
	if err := workers.StartAll(c.ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	c.workers = workers

	c.ready.Store(true)
	c.logger.Info("Container started successfully",
		zap.Strings("event_handlers", c.events.Handlers(event.TypeFormSubmitted)))
	return nil
}

func (c *Container) initInfrastructure() error {
	encoder, err := ProvideReceiptEncoder(&c.config.Receipt, c.logger)
	if err != nil {
		return err
	}
	c.encoder = encoder

	drafts, err := ProvideDraftStore(&c.config.Drafts, c.logger)
	if err != nil {
		return err
	}
	c.drafts = drafts

	exporter, err := ProvideExporter(&c.config.Forms, c.logger)
	if err != nil {
		return err
	}
	c.exporter = exporter
	return nil
}

// Close stops the workers and releases the container.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")
	err := c.teardown()

	c.closed.Store(true)
	c.ready.Store(false)

	if err == nil {
		c.logger.Info("Container closed successfully")
	}
	return err
}

// teardown stops whatever Start brought up, in reverse order. Callers hold mu.
func (c *Container) teardown() error {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	var err error
	if c.workers != nil {
		if stopErr := c.workers.StopAll(); stopErr != nil {
			c.logger.Error("Failed to stop workers", zap.Error(stopErr))
			err = fmt.Errorf("stop workers: %w", stopErr)
		}
		c.workers = nil
	}

	if c.events != nil {
		if eventsErr := c.events.Close(); eventsErr != nil {
			c.logger.Error("Failed to close event dispatcher", zap.Error(eventsErr))
			err = errors.Join(err, fmt.Errorf("close events: %w", eventsErr))
		}
		c.events = nil
	}

	c.services = nil
	c.metrics = nil
	return err
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health() *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	if c.workers != nil && c.workers.Running() {
		status.Components["workers"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["workers"] = ComponentHealth{Healthy: false, Message: "not running"}
		status.Overall = false
	}

	if c.drafts != nil {
		status.Components["drafts"] = ComponentHealth{
			Healthy: true,
			Message: fmt.Sprintf("drafts held: %d", c.drafts.Len()),
		}
	} else {
		status.Components["drafts"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	lark := ComponentHealth{Healthy: true, Message: "disabled"}
	if c.external != nil && c.external.Notifier != nil {
		lark.Message = "enabled"
	}
	status.Components["lark"] = lark

	return status
}

// Services returns all application services.
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Metrics returns the Prometheus collectors.
func (c *Container) Metrics() *metrics.Metrics {
	return c.metrics
}

// zapLoggerAdapter adapts zap.Logger to the service.Logger interface.
type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, convertToZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, convertToZapFields(keysAndValues...)...)
}

// convertToZapFields converts key-value pairs to zap fields.
func convertToZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		if err, ok := keysAndValues[i+1].(error); ok {
			fields = append(fields, zap.NamedError(key, err))
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}

// NewServiceLogger wraps a zap logger in the key-value interface used by the
// service and HTTP layers.
func NewServiceLogger(logger *zap.Logger) service.Logger {
	return &zapLoggerAdapter{logger: logger}
}
