package scheduling

import (
	"context"
	"fmt"

	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// QuoteCancelledHandler frees the trucks and crew of a cancelled move
type QuoteCancelledHandler struct {
	svc    *SchedulingService
	logger *zap.Logger
}

// NewQuoteCancelledHandler creates a new handler for quote cancelled events
func NewQuoteCancelledHandler(svc *SchedulingService, logger *zap.Logger) *QuoteCancelledHandler {
	return &QuoteCancelledHandler{svc: svc, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *QuoteCancelledHandler) EventTypes() []string {
	return []string{quote.EventTypeQuoteCancelled}
}

// Handle processes a QuoteCancelledEvent
func (h *QuoteCancelledHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	cancelled, ok := event.(*quote.QuoteCancelledEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			quote.EventTypeQuoteCancelled, event.EventType())
	}
	// Pending and quoted quotes never hold reservations.
	if !cancelled.WasBooked {
		return nil
	}

	trucks, shifts, err := h.svc.ReleaseQuote(ctx, event.CompanyID(), event.AggregateID())
	if err != nil {
		h.logger.Error("failed to release cancelled move",
			zap.String("quote_number", cancelled.QuoteNumber),
			zap.Error(err),
		)
		return err
	}

	h.logger.Info("released cancelled move",
		zap.String("company_id", event.CompanyID().String()),
		zap.String("quote_number", cancelled.QuoteNumber),
		zap.Int64("trucks", trucks),
		zap.Int64("shifts", shifts),
	)
	return nil
}
