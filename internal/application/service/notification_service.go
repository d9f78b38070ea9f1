package service

import (
	"context"
	"fmt"

	"github.com/garyjia/travel-forms/internal/application/port"
	"github.com/garyjia/travel-forms/internal/domain/entity"
	"github.com/garyjia/travel-forms/internal/domain/validation"
)

// NotificationService submits travel notifications
type NotificationService interface {
	// Defaults returns a fresh notification form
	Defaults() entity.TripDetails
	// Submit validates and posts a notification
	Submit(ctx context.Context, trip entity.TripDetails) (*FormResult[entity.TripDetails], error)
}

type notificationServiceImpl struct {
	submitter port.FormSubmitter
	notifier  port.PMONotifier
	config    Config
	logger    Logger
}

// NewNotificationService creates a new NotificationService. notifier may be nil.
func NewNotificationService(
	submitter port.FormSubmitter,
	notifier port.PMONotifier,
	config Config,
	logger Logger,
) NotificationService {
	return &notificationServiceImpl{
		submitter: submitter,
		notifier:  notifier,
		config:    config,
		logger:    logger,
	}
}

func (s *notificationServiceImpl) Defaults() entity.TripDetails {
	return entity.NewTripDetails(s.config.clock()())
}

// Submit posts the notification with its generated invoice number. On success
// the form resets and the PMO is told; a failed PMO message is only logged.
func (s *notificationServiceImpl) Submit(ctx context.Context, trip entity.TripDetails) (*FormResult[entity.TripDetails], error) {
	trip = trip.Normalize()

	if err := validation.ValidateTrip(trip); err != nil {
		return rejected(trip, validation.Trip(trip), err, MsgUnknownError), err
	}

	number := entity.NewInvoiceNumber(s.config.prefix(), trip)
	s.logger.Info("Submitting travel notification",
		"invoice_number", number.String(),
		"client", trip.Client,
		"pmo", trip.PMO,
	)

	if err := s.submitter.Submit(ctx, port.FormNotification, NewTripPayload(trip, number)); err != nil {
		s.logger.Error("Travel notification submission failed", "error", err, "invoice_number", number.String())
		return rejected(trip, nil, err, MsgUnknownError), fmt.Errorf("submit notification: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyTrip(ctx, trip, number.String()); err != nil {
			s.logger.Error("Failed to notify PMO", "error", err, "pmo", trip.PMO, "invoice_number", number.String())
		}
	}

	s.logger.Info("Travel notification submitted", "invoice_number", number.String())
	return succeeded(s.Defaults(), fmt.Sprintf(MsgNotificationSubmitted, number), number.String()), nil
}
