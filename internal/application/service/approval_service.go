package service

import (
	"context"
	"fmt"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/validation"
)

// ApprovalService submits approval decisions
type ApprovalService interface {
	Defaults() entity.ApprovalDetails
	Submit(ctx context.Context, approval entity.ApprovalDetails) (*FormResult[entity.ApprovalDetails], error)
}

type approvalServiceImpl struct {
	submitter port.FormSubmitter
	logger    Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(submitter port.FormSubmitter, logger Logger) ApprovalService {
	return &approvalServiceImpl{
		submitter: submitter,
		logger:    logger,
	}
}

func (s *approvalServiceImpl) Defaults() entity.ApprovalDetails {
	return entity.NewApprovalDetails()
}

func (s *approvalServiceImpl) Submit(ctx context.Context, approval entity.ApprovalDetails) (*FormResult[entity.ApprovalDetails], error) {
	if err := validation.ValidateApproval(approval); err != nil {
		return rejected(approval, validation.Approval(approval), err, MsgApprovalFailed), err
	}

	s.logger.Info("Submitting approval decision",
		"request_id", approval.RequestID,
		"status", approval.Status,
	)

	if err := s.submitter.Submit(ctx, port.FormApproval, NewApprovalPayload(approval)); err != nil {
		s.logger.Error("Approval submission failed", "error", err, "request_id", approval.RequestID)
		return rejected(approval, nil, err, MsgApprovalFailed), fmt.Errorf("submit approval: %w", err)
	}

	return succeeded(s.Defaults(), MsgApprovalSubmitted, ""), nil
}
