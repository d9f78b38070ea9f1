package container

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/garyjia/travel-forms/internal/application/dispatcher"
	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/application/service"
	"github.com/garyjia/travel-forms/internal/domain/event"
	"github.com/garyjia/travel-forms/internal/infrastructure/draftstore"
	"github.com/garyjia/travel-forms/internal/infrastructure/export"
	"github.com/garyjia/travel-forms/internal/infrastructure/external/endpoint"
	infraLark "github.com/garyjia/travel-forms/internal/infrastructure/external/lark"
	"github.com/garyjia/travel-forms/internal/infrastructure/metrics"
	"github.com/garyjia/travel-forms/internal/infrastructure/receipt"
	"github.com/garyjia/travel-forms/internal/infrastructure/worker"
)

// ExternalBundle holds the outbound adapters.
type ExternalBundle struct {
	Submitter port.FormSubmitter
	// Notifier is nil when Lark is disabled
	Notifier port.PMONotifier
}

// ServiceDeps holds the dependencies of the application services.
type ServiceDeps struct {
	External *ExternalBundle
	Drafts   port.DraftStore
	Encoder  port.ReceiptEncoder
	Exporter port.ReportExporter
	Forms    *FormsConfig
	Logger   *zap.Logger
}

// ProvideEvents creates the form event dispatcher with the audit log
// subscribed to every form event.
func ProvideEvents(logger *zap.Logger) dispatcher.Dispatcher {
	eventLogger := &zapLoggerAdapter{logger: logger.Named("events")}
	events := dispatcher.NewDispatcher(dispatcher.WithLogger(eventLogger))

	audit := dispatcher.AuditLog(&zapLoggerAdapter{logger: logger.Named("audit")})
	events.Subscribe(event.TypeFormSubmitted, "audit-log", audit)
	events.Subscribe(event.TypeSubmissionFailed, "audit-log", audit)
	return events
}

// ProvideMetrics creates the Prometheus collectors and subscribes them to
// every form event.
func ProvideMetrics(events dispatcher.Dispatcher, drafts *draftstore.MemoryStore) (*metrics.Metrics, error) {
	if events == nil {
		return nil, fmt.Errorf("event dispatcher is required")
	}

	var held func() int
	if drafts != nil {
		held = drafts.Len
	}
	m := metrics.New(held)
	events.Subscribe(event.TypeFormSubmitted, "metrics", m.Observe)
	events.Subscribe(event.TypeSubmissionFailed, "metrics", m.Observe)
	return m, nil
}

// ProvideExternal creates the endpoint client and, when enabled, the Lark
// notifier. Submissions publish their outcome to events when it is non-nil.
func ProvideExternal(endpointCfg *EndpointConfig, larkCfg *LarkConfig, events dispatcher.Dispatcher, logger *zap.Logger) (*ExternalBundle, error) {
	if endpointCfg == nil {
		return nil, fmt.Errorf("endpoint config is required")
	}
	if larkCfg == nil {
		return nil, fmt.Errorf("lark config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	var submitter port.FormSubmitter = endpoint.NewClient(endpoint.Config{
		URLs:    endpointCfg.URLs,
		Timeout: endpointCfg.Timeout,
	}, logger.Named("endpoint"))
	if events != nil {
		submitter = dispatcher.NewSubmitter(submitter, events)
	}

	bundle := &ExternalBundle{Submitter: submitter}

	if larkCfg.Enabled {
		bundle.Notifier = infraLark.NewSDKNotifier(infraLark.Config{
			AppID:         larkCfg.AppID,
			AppSecret:     larkCfg.AppSecret,
			ReceiveIDType: larkCfg.ReceiveIDType,
			Receivers:     larkCfg.Receivers,
		}, logger.Named("lark"))
		logger.Info("Lark PMO notifications enabled", zap.Int("receivers", len(larkCfg.Receivers)))
	}

	return bundle, nil
}

// ProvideReceiptEncoder creates the receipt policy and encoder.
func ProvideReceiptEncoder(cfg *ReceiptConfig, logger *zap.Logger) (*receipt.Encoder, error) {
	if cfg == nil {
		return nil, fmt.Errorf("receipt config is required")
	}
	return receipt.NewEncoder(receipt.Config{
		MaxSize:      cfg.MaxSize,
		AllowedTypes: cfg.AllowedTypes,
	}, logger.Named("receipt")), nil
}

// ProvideDraftStore creates the in-memory expense draft store.
func ProvideDraftStore(cfg *DraftConfig, logger *zap.Logger) (*draftstore.MemoryStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("draft config is required")
	}
	return draftstore.NewMemoryStore(cfg.TTL, logger.Named("drafts")), nil
}

// ProvideExporter creates the workbook exporter.
func ProvideExporter(cfg *FormsConfig, logger *zap.Logger) (*export.WorkbookExporter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("forms config is required")
	}
	return export.NewWorkbookExporter(cfg.InvoicePrefix, logger.Named("export")), nil
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil || deps.External == nil || deps.Forms == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	serviceLogger := &zapLoggerAdapter{logger: deps.Logger.Named("service")}
	cfg := service.Config{InvoicePrefix: deps.Forms.InvoicePrefix}

	return &ServiceBundle{
		Notification: service.NewNotificationService(
			deps.External.Submitter,
			deps.External.Notifier,
			cfg,
			serviceLogger,
		),
		Approval: service.NewApprovalService(
			deps.External.Submitter,
			serviceLogger,
		),
		InvoiceRequest: service.NewInvoiceRequestService(
			deps.External.Submitter,
			serviceLogger,
		),
		ExpenseReport: service.NewExpenseReportService(
			deps.Drafts,
			deps.Encoder,
			deps.External.Submitter,
			deps.Exporter,
			cfg,
			serviceLogger,
		),
	}, nil
}

// ProvideWorkers creates the worker manager with the draft janitor
// registered.
func ProvideWorkers(cfg *DraftConfig, drafts worker.Evicter, logger *zap.Logger) (*worker.Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("draft config is required")
	}
	if drafts == nil {
		return nil, fmt.Errorf("draft store is required")
	}

	manager := worker.NewManager(logger.Named("worker"))
	manager.Register(worker.NewJanitor(cfg.SweepInterval, drafts, logger.Named("janitor")))
	return manager, nil
}
