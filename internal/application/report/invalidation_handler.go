package report

import (
	"context"

	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/scheduling"
	"github.com/syncworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DashboardInvalidationHandler drops a company's cached dashboards whenever
// something they display changes
type DashboardInvalidationHandler struct {
	dashboards *DashboardService
	logger     *zap.Logger
}

func NewDashboardInvalidationHandler(dashboards *DashboardService, logger *zap.Logger) *DashboardInvalidationHandler {
	return &DashboardInvalidationHandler{dashboards: dashboards, logger: logger}
}

func (h *DashboardInvalidationHandler) EventTypes() []string {
	return []string{
		quote.EventTypeQuoteSubmitted,
		quote.EventTypeQuoteBooked,
		quote.EventTypeQuoteCompleted,
		quote.EventTypeQuoteCancelled,
		quote.EventTypeQuoteExpired,
		scheduling.EventTypeShiftScheduled,
		scheduling.EventTypeTruckAssigned,
		fleet.EventTypeTruckStatusChanged,
		fleet.EventTypeEmployeeDeactivated,
	}
}

func (h *DashboardInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.dashboards.Invalidate(ctx, event.CompanyID()); err != nil {
		h.logger.Warn("Failed to invalidate dashboard cache",
			zap.String("event_type", event.EventType()),
			zap.String("company_id", event.CompanyID().String()),
			zap.Error(err))
		return err
	}
	return nil
}

var _ shared.EventHandler = (*DashboardInvalidationHandler)(nil)
