package service

import (
	"context"
	"fmt"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/validation"
)

// InvoiceRequestService submits invoice requests
type InvoiceRequestService interface {
	Defaults() entity.InvoiceRequest
	Submit(ctx context.Context, req entity.InvoiceRequest) (*FormResult[entity.InvoiceRequest], error)
}

type invoiceRequestServiceImpl struct {
	submitter port.FormSubmitter
	logger    Logger
}

// NewInvoiceRequestService creates a new InvoiceRequestService
func NewInvoiceRequestService(submitter port.FormSubmitter, logger Logger) InvoiceRequestService {
	return &invoiceRequestServiceImpl{
		submitter: submitter,
		logger:    logger,
	}
}

func (s *invoiceRequestServiceImpl) Defaults() entity.InvoiceRequest {
	return entity.NewInvoiceRequest()
}

func (s *invoiceRequestServiceImpl) Submit(ctx context.Context, req entity.InvoiceRequest) (*FormResult[entity.InvoiceRequest], error) {
	if err := validation.ValidateInvoiceRequest(req); err != nil {
		return rejected(req, validation.InvoiceRequest(req), err, MsgInvoiceRequestFailed), err
	}

	s.logger.Info("Submitting invoice request",
		"invoice_number", req.InvoiceNumber,
		"client", req.Client,
		"currency", req.Currency,
	)

	if err := s.submitter.Submit(ctx, port.FormInvoiceRequest, NewInvoiceRequestPayload(req)); err != nil {
		s.logger.Error("Invoice request submission failed", "error", err, "invoice_number", req.InvoiceNumber)
		return rejected(req, nil, err, MsgInvoiceRequestFailed), fmt.Errorf("submit invoice request: %w", err)
	}

	return succeeded(s.Defaults(), MsgInvoiceRequestSubmitted, ""), nil
}
