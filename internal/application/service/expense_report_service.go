package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/expense"
	"github.com/garyjia/travel-forms/internal/domain/workflow"
)

// ExpenseReportService drives server-held expense report drafts. Methods that
// return a view alongside an error return the draft as it stands after the
// failure, so callers can re-render with entered data intact.
type ExpenseReportService interface {
	Create(ctx context.Context) (*expense.View, error)
	Get(ctx context.Context, id string) (*expense.View, error)
	UpdateTrip(ctx context.Context, id string, trip entity.TripDetails) (*expense.View, error)
	UpdatePending(ctx context.Context, id string, item entity.ExpenseItem) (*expense.View, error)
	AttachReceipt(ctx context.Context, id, name, contentType string, data []byte) (*expense.View, error)
	AddItem(ctx context.Context, id string) (*expense.View, error)
	RemoveItem(ctx context.Context, id, itemID string) (*expense.View, error)
	ClearReceipt(ctx context.Context, id, itemID string) (*expense.View, error)
	ChangeTab(ctx context.Context, id string, tab workflow.State) (*expense.View, error)
	DismissBanner(ctx context.Context, id string) (*expense.View, error)
	Submit(ctx context.Context, id string) (*expense.View, error)
	Export(ctx context.Context, id string, w io.Writer) error
	Discard(ctx context.Context, id string) error
}

type expenseReportServiceImpl struct {
	drafts    port.DraftStore
	encoder   port.ReceiptEncoder
	submitter port.FormSubmitter
	exporter  port.ReportExporter
	config    Config
	logger    Logger
}

// NewExpenseReportService creates a new ExpenseReportService
func NewExpenseReportService(
	drafts port.DraftStore,
	encoder port.ReceiptEncoder,
	submitter port.FormSubmitter,
	exporter port.ReportExporter,
	config Config,
	logger Logger,
) ExpenseReportService {
	return &expenseReportServiceImpl{
		drafts:    drafts,
		encoder:   encoder,
		submitter: submitter,
		exporter:  exporter,
		config:    config,
		logger:    logger,
	}
}

func (s *expenseReportServiceImpl) Create(ctx context.Context) (*expense.View, error) {
	report := expense.New(uuid.New().String(), expense.WithClock(s.config.clock()))
	if err := s.drafts.Save(report); err != nil {
		s.logger.Error("Failed to save expense draft", "error", err)
		return nil, fmt.Errorf("save draft: %w", err)
	}

	s.logger.Info("Expense draft created", "draft_id", report.ID())
	view := report.View()
	return &view, nil
}

func (s *expenseReportServiceImpl) Get(ctx context.Context, id string) (*expense.View, error) {
	return s.apply(id, func(*expense.Report) error { return nil })
}

func (s *expenseReportServiceImpl) UpdateTrip(ctx context.Context, id string, trip entity.TripDetails) (*expense.View, error) {
	return s.apply(id, func(r *expense.Report) error {
		r.UpdateTrip(trip)
		return nil
	})
}

func (s *expenseReportServiceImpl) UpdatePending(ctx context.Context, id string, item entity.ExpenseItem) (*expense.View, error) {
	return s.apply(id, func(r *expense.Report) error {
		r.UpdatePending(item)
		return nil
	})
}

// AttachReceipt checks the upload against the receipt policy before it is
// attached to the pending item. A rejected upload shows an error banner.
func (s *expenseReportServiceImpl) AttachReceipt(ctx context.Context, id, name, contentType string, data []byte) (*expense.View, error) {
	receipt, acceptErr := s.encoder.Accept(name, contentType, data)
	if acceptErr != nil {
		s.logger.Error("Receipt rejected", "error", acceptErr, "draft_id", id, "name", name, "size", len(data))
	}

	return s.apply(id, func(r *expense.Report) error {
		if acceptErr != nil {
			r.Failed(FailureBanner(acceptErr, MsgReceiptUnreadable).Message)
			return acceptErr
		}
		r.AttachReceipt(receipt)
		return nil
	})
}

func (s *expenseReportServiceImpl) AddItem(ctx context.Context, id string) (*expense.View, error) {
	return s.apply(id, func(r *expense.Report) error {
		item, err := r.AddPending()
		if err != nil {
			return err
		}
		s.logger.Info("Expense item added", "draft_id", id, "item_id", item.ID, "amount", item.Amount.String())
		return nil
	})
}

func (s *expenseReportServiceImpl) RemoveItem(ctx context.Context, id, itemID string) (*expense.View, error) {
	return s.apply(id, func(r *expense.Report) error {
		return r.Remove(itemID)
	})
}

func (s *expenseReportServiceImpl) ClearReceipt(ctx context.Context, id, itemID string) (*expense.View, error) {
	return s.apply(id, func(r *expense.Report) error {
		return r.ClearReceipt(itemID)
	})
}

func (s *expenseReportServiceImpl) ChangeTab(ctx context.Context, id string, tab workflow.State) (*expense.View, error) {
	return s.apply(id, func(r *expense.Report) error {
		return r.GoTo(ctx, tab)
	})
}

func (s *expenseReportServiceImpl) DismissBanner(ctx context.Context, id string) (*expense.View, error) {
	return s.apply(id, func(r *expense.Report) error {
		r.DismissBanner()
		return nil
	})
}

// Submit validates the draft, encodes its receipts and posts the report. The
// draft is not locked while the request is in flight. On success the draft
// resets to its defaults; otherwise entered data is kept and an error banner
// is shown.
func (s *expenseReportServiceImpl) Submit(ctx context.Context, id string) (*expense.View, error) {
	var snapshot expense.Submission
	view, err := s.apply(id, func(r *expense.Report) error {
		if err := r.ValidateForSubmit(); err != nil {
			return err
		}
		snapshot = r.Snapshot()
		return nil
	})
	if err != nil {
		return view, err
	}

	number := entity.NewInvoiceNumber(s.config.prefix(), snapshot.Trip)
	s.logger.Info("Submitting expense report",
		"draft_id", id,
		"invoice_number", number.String(),
		"items", len(snapshot.Items),
	)

	submitErr := s.send(ctx, snapshot, number)
	if submitErr != nil {
		s.logger.Error("Expense report submission failed", "error", submitErr, "draft_id", id, "invoice_number", number.String())
		banner := FailureBanner(submitErr, MsgUnknownError)
		view, err := s.apply(id, func(r *expense.Report) error {
			r.Failed(banner.Message)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return view, fmt.Errorf("submit expense report: %w", submitErr)
	}

	s.logger.Info("Expense report submitted", "draft_id", id, "invoice_number", number.String())
	return s.apply(id, func(r *expense.Report) error {
		r.Succeeded(number.String(), fmt.Sprintf(MsgExpensesSubmitted, number))
		return nil
	})
}

func (s *expenseReportServiceImpl) send(ctx context.Context, snapshot expense.Submission, number entity.InvoiceNumber) error {
	payload, err := NewExpenseReportPayload(ctx, snapshot, number, s.encoder)
	if err != nil {
		return err
	}
	return s.submitter.Submit(ctx, port.FormExpenseReport, payload)
}

func (s *expenseReportServiceImpl) Export(ctx context.Context, id string, w io.Writer) error {
	var snapshot expense.Submission
	err := s.drafts.Update(id, func(r *expense.Report) error {
		snapshot = r.Snapshot()
		return nil
	})
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}

	if err := s.exporter.Export(w, snapshot); err != nil {
		s.logger.Error("Failed to export expense report", "error", err, "draft_id", id)
		return fmt.Errorf("export draft: %w", err)
	}
	return nil
}

// Discard drops a draft the user abandoned
func (s *expenseReportServiceImpl) Discard(ctx context.Context, id string) error {
	if err := s.drafts.Delete(id); err != nil {
		return fmt.Errorf("discard draft: %w", err)
	}
	s.logger.Info("Expense draft discarded", "draft_id", id)
	return nil
}

// apply runs fn against the stored draft and renders the result. A store
// error yields no view; an error from fn is returned with the view.
func (s *expenseReportServiceImpl) apply(id string, fn func(r *expense.Report) error) (*expense.View, error) {
	var (
		view  expense.View
		fnErr error
	)
	err := s.drafts.Update(id, func(r *expense.Report) error {
		fnErr = fn(r)
		view = r.View()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load draft %s: %w", id, err)
	}
	return &view, fnErr
}
