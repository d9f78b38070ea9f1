package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/validation"
)

func validTrip() entity.TripDetails {
	return entity.TripDetails{
		FullName:       "Jane Mary Doe",
		Email:          "jane@example.com",
		StartDate:      "2025-05-12",
		EndDate:        "2025-05-15",
		TravelLocation: "Indianapolis",
		Client:         "BMS",
		Project:        "Fill finish",
		PMO:            "Rachel",
		ResourceType:   "Consultant",
	}
}

func TestNotificationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the flattened payload and resets", func(t *testing.T) {
		submitter := &mockSubmitter{}
		notifier := &mockNotifier{}
		svc := NewNotificationService(submitter, notifier, testConfig, &mockLogger{})

		result, err := svc.Submit(ctx, validTrip())

		require.NoError(t, err)
		require.Len(t, submitter.calls, 1)
		assert.Equal(t, port.FormNotification, submitter.calls[0].form)

		payload, ok := submitter.calls[0].payload.(TripPayload)
		require.True(t, ok)
		assert.Equal(t, "JMD", payload.NameInitial)
		assert.Equal(t, "4", payload.DateDuration)
		assert.Equal(t, "250512", payload.InvoiceDatePart)
		assert.Equal(t, "iSSi-EXP-BMS-JMD-250512", payload.NewInvoiceNum)

		assert.Equal(t, "iSSi-EXP-BMS-JMD-250512", result.InvoiceNumber)
		assert.Equal(t, entity.BannerSuccess, result.Banner.Kind)
		assert.Equal(t, "Travel notification submitted successfully! Invoice# iSSi-EXP-BMS-JMD-250512", result.Banner.Message)
		assert.Equal(t, entity.NewTripDetails(testNow), result.Form)
		assert.Equal(t, []string{"iSSi-EXP-BMS-JMD-250512"}, notifier.notified)
	})

	t.Run("uses the configured prefix", func(t *testing.T) {
		submitter := &mockSubmitter{}
		cfg := testConfig
		cfg.InvoicePrefix = "ACME"
		svc := NewNotificationService(submitter, nil, cfg, &mockLogger{})

		result, err := svc.Submit(ctx, validTrip())

		require.NoError(t, err)
		assert.Equal(t, "ACME-BMS-JMD-250512", result.InvoiceNumber)
	})

	t.Run("blocks invalid input without sending", func(t *testing.T) {
		submitter := &mockSubmitter{}
		svc := NewNotificationService(submitter, nil, testConfig, &mockLogger{})

		trip := validTrip()
		trip.Email = "not-an-email"
		trip.Project = ""
		result, err := svc.Submit(ctx, trip)

		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Empty(t, submitter.calls)
		assert.True(t, result.Errors[entity.FieldEmail])
		assert.True(t, result.Errors[entity.FieldProject])
		assert.Equal(t, "not-an-email", result.Form.Email)
		assert.Equal(t, validation.MsgCheckEntries, result.Banner.Message)
	})

	t.Run("keeps data and shows the endpoint error", func(t *testing.T) {
		submitter := &mockSubmitter{submitFunc: func(context.Context, port.Form, interface{}) error {
			return &port.RejectionError{StatusCode: 200, Message: "Sheet locked"}
		}}
		notifier := &mockNotifier{}
		svc := NewNotificationService(submitter, notifier, testConfig, &mockLogger{})

		result, err := svc.Submit(ctx, validTrip())

		assert.ErrorIs(t, err, port.ErrRejected)
		assert.Equal(t, "Sheet locked", result.Banner.Message)
		assert.Equal(t, "Jane Mary Doe", result.Form.FullName)
		assert.Empty(t, notifier.notified)
	})

	t.Run("falls back to unknown error", func(t *testing.T) {
		submitter := &mockSubmitter{submitFunc: func(context.Context, port.Form, interface{}) error {
			return &port.RejectionError{StatusCode: 200}
		}}
		svc := NewNotificationService(submitter, nil, testConfig, &mockLogger{})

		result, err := svc.Submit(ctx, validTrip())

		require.Error(t, err)
		assert.Equal(t, MsgUnknownError, result.Banner.Message)
	})

	t.Run("failed PMO message does not fail the submission", func(t *testing.T) {
		notifier := &mockNotifier{notifyFunc: func(context.Context, entity.TripDetails, string) error {
			return errors.New("lark down")
		}}
		svc := NewNotificationService(&mockSubmitter{}, notifier, testConfig, &mockLogger{})

		result, err := svc.Submit(ctx, validTrip())

		require.NoError(t, err)
		assert.Equal(t, entity.BannerSuccess, result.Banner.Kind)
	})
}

func TestApprovalService_Submit(t *testing.T) {
	ctx := context.Background()

	approval := entity.ApprovalDetails{
		RequestID:     "REQ-7",
		RequestorName: "Jane Doe",
		Client:        "BMS",
		Project:       "Fill finish",
		Amount:        decimal.RequireFromString("120.50"),
		Status:        entity.ApprovalApproved,
		ApproverName:  "Rachel",
	}

	t.Run("success", func(t *testing.T) {
		submitter := &mockSubmitter{}
		svc := NewApprovalService(submitter, &mockLogger{})

		result, err := svc.Submit(ctx, approval)

		require.NoError(t, err)
		require.Len(t, submitter.calls, 1)
		payload := submitter.calls[0].payload.(ApprovalPayload)
		assert.Equal(t, 120.5, payload.Amount)
		assert.Equal(t, "Approved", payload.Status)
		assert.Equal(t, MsgApprovalSubmitted, result.Banner.Message)
		assert.Equal(t, entity.NewApprovalDetails(), result.Form)
	})

	t.Run("missing request id", func(t *testing.T) {
		submitter := &mockSubmitter{}
		svc := NewApprovalService(submitter, &mockLogger{})
		a := approval
		a.RequestID = " "

		result, err := svc.Submit(ctx, a)

		require.Error(t, err)
		assert.Empty(t, submitter.calls)
		assert.True(t, result.Errors[entity.FieldRequestID])
	})

	t.Run("rejection without message", func(t *testing.T) {
		submitter := &mockSubmitter{submitFunc: func(context.Context, port.Form, interface{}) error {
			return &port.RejectionError{StatusCode: 500}
		}}
		svc := NewApprovalService(submitter, &mockLogger{})

		result, err := svc.Submit(ctx, approval)

		require.Error(t, err)
		assert.Equal(t, MsgApprovalFailed, result.Banner.Message)
		assert.Equal(t, "REQ-7", result.Form.RequestID)
	})
}

func TestInvoiceRequestService_Submit(t *testing.T) {
	ctx := context.Background()

	req := entity.InvoiceRequest{
		RequestorName: "Jane Doe",
		Email:         "jane@example.com",
		InvoiceNumber: "INV-1",
		Client:        "BMS",
		Project:       "Fill finish",
		TotalAmount:   decimal.NewFromInt(900),
		Currency:      "CAD",
	}

	t.Run("success", func(t *testing.T) {
		submitter := &mockSubmitter{}
		svc := NewInvoiceRequestService(submitter, &mockLogger{})

		result, err := svc.Submit(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, port.FormInvoiceRequest, submitter.calls[0].form)
		assert.Equal(t, MsgInvoiceRequestSubmitted, result.Banner.Message)
		assert.Equal(t, entity.DefaultInvoiceCurrency, result.Form.Currency)
	})

	t.Run("zero total is invalid", func(t *testing.T) {
		svc := NewInvoiceRequestService(&mockSubmitter{}, &mockLogger{})
		r := req
		r.TotalAmount = decimal.Zero

		result, err := svc.Submit(ctx, r)

		require.Error(t, err)
		assert.True(t, result.Errors[entity.FieldTotalAmount])
	})

	t.Run("network failure", func(t *testing.T) {
		submitter := &mockSubmitter{submitFunc: func(context.Context, port.Form, interface{}) error {
			return context.DeadlineExceeded
		}}
		svc := NewInvoiceRequestService(submitter, &mockLogger{})

		result, err := svc.Submit(ctx, req)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, MsgUnreachable, result.Banner.Message)
	})
}
