// Package lark tells project managers about new travel notifications through
// Lark IM.
package lark

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/garyjia/travel-forms/internal/domain/entity"
)

// DefaultReceiveIDType addresses receivers by open_id
const DefaultReceiveIDType = "open_id"

// NoticeSender delivers one notice and returns its message id
type NoticeSender interface {
	Send(ctx context.Context, notice Notice) (string, error)
}

// Notifier implements port.PMONotifier
type Notifier struct {
	sender        NoticeSender
	receiveIDType string
	receivers     map[string]string
	logger        *zap.Logger
}

// NewNotifier creates a PMO notifier sending through sender
func NewNotifier(sender NoticeSender, cfg Config, logger *zap.Logger) *Notifier {
	idType := cfg.ReceiveIDType
	if idType == "" {
		idType = DefaultReceiveIDType
	}
	receivers := make(map[string]string, len(cfg.Receivers))
	for pm, id := range cfg.Receivers {
		receivers[strings.ToLower(pm)] = id
	}
	return &Notifier{
		sender:        sender,
		receiveIDType: idType,
		receivers:     receivers,
		logger:        logger,
	}
}

// NewSDKNotifier creates a notifier backed by the Lark SDK
func NewSDKNotifier(cfg Config, logger *zap.Logger) *Notifier {
	return NewNotifier(NewMessageAPI(NewSDKClient(cfg, logger), logger), cfg, logger)
}

// NotifyTrip sends a text message to the trip's PM. PMs without a configured
// receiver are skipped.
// Implements port.PMONotifier interface
func (n *Notifier) NotifyTrip(ctx context.Context, trip entity.TripDetails, invoiceNumber string) error {
	receiveID, ok := n.receivers[strings.ToLower(trip.PMO)]
	if !ok || receiveID == "" {
		n.logger.Info("No Lark receiver configured for PM, skipping",
			zap.String("pmo", trip.PMO))
		return nil
	}

	messageID, err := n.sender.Send(ctx, Notice{
		ReceiveIDType: n.receiveIDType,
		ReceiveID:     receiveID,
		Text:          tripMessage(trip, invoiceNumber),
	})
	if err != nil {
		var rejected *RejectedError
		if errors.As(err, &rejected) {
			n.logger.Error("Lark rejected PM notice",
				zap.String("pmo", trip.PMO),
				zap.Int("code", rejected.Code),
				zap.String("msg", rejected.Msg))
		}
		return fmt.Errorf("failed to notify %s: %w", trip.PMO, err)
	}

	n.logger.Info("PM notified",
		zap.String("pmo", trip.PMO),
		zap.String("invoice_number", invoiceNumber),
		zap.String("message_id", messageID))
	return nil
}

func tripMessage(trip entity.TripDetails, invoiceNumber string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New travel notification %s\n", invoiceNumber)
	fmt.Fprintf(&b, "Traveller: %s (%s)\n", trip.FullName, trip.Email)
	fmt.Fprintf(&b, "Client: %s / %s\n", trip.Client, trip.Project)
	fmt.Fprintf(&b, "Dates: %s to %s (%d days)\n", trip.StartDate, trip.EndDate, trip.DateDuration)
	fmt.Fprintf(&b, "Location: %s\n", trip.TravelLocation)
	fmt.Fprintf(&b, "Resource type: %s", trip.ResourceType)
	if info := strings.TrimSpace(trip.AdditionalInfo); info != "" {
		fmt.Fprintf(&b, "\nNotes: %s", info)
	}
	return b.String()
}
