package port

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/expense"
)

// Form identifies which form a payload belongs to
type Form string

const (
	FormNotification   Form = "notification"
	FormExpenseReport  Form = "expense_report"
	FormApproval       Form = "approval"
	FormInvoiceRequest Form = "invoice_request"
)

// ErrRejected is matched by every RejectionError
var ErrRejected = errors.New("submission rejected")

// RejectionError is returned when the endpoint answered but did not accept
// the submission
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("submission rejected (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("submission rejected (status %d): %s", e.StatusCode, e.Message)
}

func (e *RejectionError) Unwrap() error {
	return ErrRejected
}

// FormSubmitter delivers a JSON payload to the endpoint configured for a form.
// A nil error means the endpoint reported success.
type FormSubmitter interface {
	Submit(ctx context.Context, form Form, payload interface{}) error
}

// EncodedReceipt is a receipt in transferable form
type EncodedReceipt struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

// Receipt policy violations returned by ReceiptEncoder.Accept
var (
	ErrReceiptTooLarge = errors.New("receipt exceeds the maximum size")
	ErrReceiptType     = errors.New("receipt type not allowed")
)

// ReceiptEncoder turns uploads into receipts and receipts into payload objects
type ReceiptEncoder interface {
	// Accept checks an upload against the receipt policy
	Accept(name, declaredType string, data []byte) (entity.Receipt, error)
	// Encode produces the base64 representation of a receipt
	Encode(ctx context.Context, receipt entity.Receipt) (EncodedReceipt, error)
}

// PMONotifier tells a project manager about a travel notification
type PMONotifier interface {
	NotifyTrip(ctx context.Context, trip entity.TripDetails, invoiceNumber string) error
}

// ReportExporter renders an expense report document
type ReportExporter interface {
	Export(w io.Writer, report expense.Submission) error
}

// Referenced is implemented by payloads that identify the submitted record
type Referenced interface {
	Reference() string
}
