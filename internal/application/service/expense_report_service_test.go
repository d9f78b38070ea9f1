package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/expense"
	"github.com/garyjia/travel-forms/internal/domain/validation"
	"github.com/garyjia/travel-forms/internal/domain/workflow"
)

type expenseFixture struct {
	svc       ExpenseReportService
	drafts    *mockDrafts
	encoder   *mockEncoder
	submitter *mockSubmitter
	exporter  *mockExporter
}

func newExpenseFixture() *expenseFixture {
	f := &expenseFixture{
		drafts:    newMockDrafts(),
		encoder:   &mockEncoder{},
		submitter: &mockSubmitter{},
		exporter:  &mockExporter{},
	}
	f.svc = NewExpenseReportService(f.drafts, f.encoder, f.submitter, f.exporter, testConfig, &mockLogger{})
	return f
}

func (f *expenseFixture) addItem(t *testing.T, id, desc, amount string) *expense.View {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.UpdatePending(ctx, id, entity.ExpenseItem{
		ExpenseDate: "2025-05-13",
		Category:    "Hotel",
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Currency:    "USD",
	})
	require.NoError(t, err)
	_, err = f.svc.AttachReceipt(ctx, id, desc+".pdf", "application/pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	view, err := f.svc.AddItem(ctx, id)
	require.NoError(t, err)
	return view
}

// readyDraft returns a draft on the expenses tab with n items
func (f *expenseFixture) readyDraft(t *testing.T, n int) string {
	t.Helper()
	ctx := context.Background()
	view, err := f.svc.Create(ctx)
	require.NoError(t, err)

	_, err = f.svc.UpdateTrip(ctx, view.ID, validTrip())
	require.NoError(t, err)
	_, err = f.svc.ChangeTab(ctx, view.ID, workflow.StateExpenses)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		f.addItem(t, view.ID, fmt.Sprintf("Item %d", i+1), "100.25")
	}
	return view.ID
}

func TestExpenseReportService_Create(t *testing.T) {
	f := newExpenseFixture()

	view, err := f.svc.Create(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, workflow.StateDetails, view.Tab)
	assert.Equal(t, "2025-05-20", view.Trip.StartDate)
	assert.Equal(t, "0.00", view.Total)

	got, err := f.svc.Get(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, got.ID)
}

func TestExpenseReportService_UnknownDraft(t *testing.T) {
	f := newExpenseFixture()

	view, err := f.svc.Get(context.Background(), "missing")

	assert.Nil(t, view)
	assert.ErrorIs(t, err, port.ErrDraftNotFound)
}

func TestExpenseReportService_ChangeTabGuard(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	view, err := f.svc.Create(ctx)
	require.NoError(t, err)

	view, err = f.svc.ChangeTab(ctx, view.ID, workflow.StateExpenses)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	require.NotNil(t, view)
	assert.Equal(t, workflow.StateDetails, view.Tab)
	assert.True(t, view.TripErrors[entity.FieldFullName])
	assert.Equal(t, validation.MsgCheckEntries, view.Banner.Message)

	view, err = f.svc.DismissBanner(ctx, view.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Banner)
}

func TestExpenseReportService_Items(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	id := f.readyDraft(t, 3)

	view, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, view.Expenses, 3)
	assert.Equal(t, "300.75", view.Total)
	assert.True(t, view.CanSubmit)

	removed := view.Expenses[1].ID
	view, err = f.svc.RemoveItem(ctx, id, removed)
	require.NoError(t, err)
	assert.Len(t, view.Expenses, 2)
	assert.Equal(t, "Item 1", view.Expenses[0].Description)
	assert.Equal(t, "Item 3", view.Expenses[1].Description)

	view, err = f.svc.ClearReceipt(ctx, id, view.Expenses[0].ID)
	require.NoError(t, err)
	assert.False(t, view.Expenses[0].HasReceipt)

	view, err = f.svc.RemoveItem(ctx, id, removed)
	assert.ErrorIs(t, err, expense.ErrItemNotFound)
	assert.Len(t, view.Expenses, 2)
}

func TestExpenseReportService_AddItemRequiresReceipt(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	id := f.readyDraft(t, 0)

	_, err := f.svc.UpdatePending(ctx, id, entity.ExpenseItem{
		ExpenseDate: "2025-05-13",
		Category:    "Taxi",
		Description: "Airport",
		Amount:      decimal.NewFromInt(40),
		Currency:    "CAD",
	})
	require.NoError(t, err)

	view, err := f.svc.AddItem(ctx, id)

	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, view.Expenses)
	assert.True(t, view.ItemErrors[entity.FieldItemReceipt])
	assert.Equal(t, "Airport", view.Pending.Description)
}

func TestExpenseReportService_AttachReceiptRejected(t *testing.T) {
	f := newExpenseFixture()
	f.encoder.acceptFunc = func(name, declaredType string, data []byte) (entity.Receipt, error) {
		return entity.Receipt{}, fmt.Errorf("%w: 9000000 bytes", port.ErrReceiptTooLarge)
	}
	ctx := context.Background()
	view, err := f.svc.Create(ctx)
	require.NoError(t, err)

	view, err = f.svc.AttachReceipt(ctx, view.ID, "huge.png", "image/png", []byte("x"))

	assert.ErrorIs(t, err, port.ErrReceiptTooLarge)
	assert.False(t, view.Pending.HasReceipt)
	assert.Equal(t, MsgReceiptTooLarge, view.Banner.Message)
}

func TestExpenseReportService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("success resets the draft", func(t *testing.T) {
		f := newExpenseFixture()
		id := f.readyDraft(t, 2)

		view, err := f.svc.Submit(ctx, id)

		require.NoError(t, err)
		require.Len(t, f.submitter.calls, 1)
		assert.Equal(t, port.FormExpenseReport, f.submitter.calls[0].form)

		payload := f.submitter.calls[0].payload.(*ExpenseReportPayload)
		assert.Equal(t, "iSSi-EXP-BMS-JMD-250512", payload.NewInvoiceNum)
		require.Len(t, payload.Expenses, 2)
		assert.Equal(t, 100.25, payload.Expenses[0].Amount)
		require.NotNil(t, payload.Expenses[0].ReceiptBase64)
		assert.Equal(t, "Item 1.pdf", payload.Expenses[0].ReceiptBase64.Name)
		assert.Equal(t, "JVBERi0xLjQ=", payload.Expenses[0].ReceiptBase64.Data)

		assert.Empty(t, view.Expenses)
		assert.Equal(t, workflow.StateDetails, view.Tab)
		assert.Equal(t, entity.BannerSuccess, view.Banner.Kind)
		assert.Equal(t, "Travel expenses submitted successfully! Invoice# iSSi-EXP-BMS-JMD-250512", view.Banner.Message)
		assert.Equal(t, "iSSi-EXP-BMS-JMD-250512", view.InvoiceNumber)
	})

	t.Run("cleared receipts are omitted", func(t *testing.T) {
		f := newExpenseFixture()
		id := f.readyDraft(t, 1)
		view, err := f.svc.Get(ctx, id)
		require.NoError(t, err)
		_, err = f.svc.ClearReceipt(ctx, id, view.Expenses[0].ID)
		require.NoError(t, err)

		_, err = f.svc.Submit(ctx, id)

		require.NoError(t, err)
		payload := f.submitter.calls[0].payload.(*ExpenseReportPayload)
		assert.Nil(t, payload.Expenses[0].ReceiptBase64)
	})

	t.Run("no items", func(t *testing.T) {
		f := newExpenseFixture()
		id := f.readyDraft(t, 0)

		view, err := f.svc.Submit(ctx, id)

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, f.submitter.calls)
		assert.Equal(t, validation.MsgAddOneExpense, view.Banner.Message)
	})

	t.Run("rejected keeps data", func(t *testing.T) {
		f := newExpenseFixture()
		f.submitter.submitFunc = func(context.Context, port.Form, interface{}) error {
			return &port.RejectionError{StatusCode: 200, Message: "Duplicate invoice"}
		}
		id := f.readyDraft(t, 1)

		view, err := f.svc.Submit(ctx, id)

		assert.ErrorIs(t, err, port.ErrRejected)
		assert.Len(t, view.Expenses, 1)
		assert.Equal(t, "Jane Mary Doe", view.Trip.FullName)
		assert.Equal(t, "Duplicate invoice", view.Banner.Message)
	})

	t.Run("receipt encoding failure is not sent", func(t *testing.T) {
		f := newExpenseFixture()
		f.encoder.encodeFunc = func(context.Context, entity.Receipt) (port.EncodedReceipt, error) {
			return port.EncodedReceipt{}, errors.New("read failed")
		}
		id := f.readyDraft(t, 1)

		view, err := f.svc.Submit(ctx, id)

		require.Error(t, err)
		assert.Empty(t, f.submitter.calls)
		assert.Equal(t, MsgReceiptUnreadable, view.Banner.Message)
	})
}

func TestExpenseReportService_Export(t *testing.T) {
	f := newExpenseFixture()
	id := f.readyDraft(t, 1)

	var buf bytes.Buffer
	require.NoError(t, f.svc.Export(context.Background(), id, &buf))
	assert.Equal(t, "Jane Mary Doe", buf.String())

	f.exporter.exportFunc = func(io.Writer, expense.Submission) error { return errors.New("disk full") }
	assert.Error(t, f.svc.Export(context.Background(), id, &buf))
	assert.ErrorIs(t, f.svc.Export(context.Background(), "missing", &buf), port.ErrDraftNotFound)
}

func TestExpenseReportService_Discard(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	view, err := f.svc.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, f.svc.Discard(ctx, view.ID))

	_, err = f.svc.Get(ctx, view.ID)
	assert.ErrorIs(t, err, port.ErrDraftNotFound)
	assert.ErrorIs(t, f.svc.Discard(ctx, view.ID), port.ErrDraftNotFound)
}
