package service

import (
	"errors"
	"time"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/validation"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Config holds settings shared by the form services
type Config struct {
	// InvoicePrefix starts generated trip invoice numbers
	InvoicePrefix string
	// Now is the clock used for default dates; time.Now when nil
	Now func() time.Time
}

func (c Config) clock() func() time.Time {
	if c.Now == nil {
		return time.Now
	}
	return c.Now
}

func (c Config) prefix() string {
	if c.InvoicePrefix == "" {
		return entity.DefaultInvoicePrefix
	}
	return c.InvoicePrefix
}

// Banner texts
const (
	MsgNotificationSubmitted   = "Travel notification submitted successfully! Invoice# %s"
	MsgExpensesSubmitted       = "Travel expenses submitted successfully! Invoice# %s"
	MsgApprovalSubmitted       = "Approval decision submitted!"
	MsgInvoiceRequestSubmitted = "Invoice request submitted!"

	MsgUnknownError         = "Unknown error"
	MsgApprovalFailed       = "Failed to submit approval"
	MsgInvoiceRequestFailed = "Failed to submit invoice request"
	MsgUnreachable          = "Unable to reach the submission service. Please try again."
	MsgReceiptUnreadable    = "Failed to read receipt file"
	MsgReceiptTooLarge      = "Receipt file is too large"
	MsgReceiptType          = "Receipt must be an image or a PDF"
)

// FormResult is the state a single-step form shows after a submit attempt.
// Form holds the defaults after a success and the entered values otherwise.
type FormResult[T any] struct {
	Form          T                      `json:"form"`
	Errors        validation.FieldErrors `json:"errors"`
	Banner        *entity.Banner         `json:"banner,omitempty"`
	InvoiceNumber string                 `json:"invoiceNumber,omitempty"`
}

func succeeded[T any](defaults T, banner string, invoiceNumber string) *FormResult[T] {
	return &FormResult[T]{
		Form:          defaults,
		Errors:        validation.FieldErrors{},
		Banner:        entity.SuccessBanner(banner),
		InvoiceNumber: invoiceNumber,
	}
}

func rejected[T any](form T, errs validation.FieldErrors, err error, fallback string) *FormResult[T] {
	if errs == nil {
		errs = validation.FieldErrors{}
	}
	return &FormResult[T]{
		Form:   form,
		Errors: errs,
		Banner: FailureBanner(err, fallback),
	}
}

// FailureBanner picks the error banner for a failed validation or submission.
// fallback is used when the endpoint rejected without a message.
func FailureBanner(err error, fallback string) *entity.Banner {
	var verr *validation.Error
	if errors.As(err, &verr) {
		return entity.ErrorBanner(verr.Message)
	}

	var rej *port.RejectionError
	if errors.As(err, &rej) {
		if rej.Message != "" {
			return entity.ErrorBanner(rej.Message)
		}
		return entity.ErrorBanner(fallback)
	}

	switch {
	case errors.Is(err, port.ErrReceiptTooLarge):
		return entity.ErrorBanner(MsgReceiptTooLarge)
	case errors.Is(err, port.ErrReceiptType):
		return entity.ErrorBanner(MsgReceiptType)
	}

	if errors.Is(err, errReceipt) {
		return entity.ErrorBanner(MsgReceiptUnreadable)
	}

	return entity.ErrorBanner(MsgUnreachable)
}

var errReceipt = errors.New("receipt encoding failed")
