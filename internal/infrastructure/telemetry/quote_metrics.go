package telemetry

import (
	"context"
	"fmt"

	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// QuoteMetrics counts quote lifecycle transitions. It subscribes to the
// event bus, so services never touch instruments directly.
type QuoteMetrics struct {
	submitted     metric.Int64Counter
	booked        metric.Int64Counter
	completed     metric.Int64Counter
	cancelled     metric.Int64Counter
	expired       metric.Int64Counter
	bookedRevenue metric.Float64Counter
}

// NewQuoteMetrics creates the quote instruments on meter
func NewQuoteMetrics(meter metric.Meter) (*QuoteMetrics, error) {
	m := &QuoteMetrics{}
	var err error
	counters := []struct {
		target *metric.Int64Counter
		name   string
		desc   string
	}{
		{&m.submitted, "syncworks.quotes.submitted", "Quotes submitted through the public form"},
		{&m.booked, "syncworks.quotes.booked", "Quotes booked"},
		{&m.completed, "syncworks.quotes.completed", "Moves completed"},
		{&m.cancelled, "syncworks.quotes.cancelled", "Quotes cancelled"},
		{&m.expired, "syncworks.quotes.expired", "Quotes expired by the stale quote job"},
	}
	for _, c := range counters {
		if *c.target, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc)); err != nil {
			return nil, fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
	}
	m.bookedRevenue, err = meter.Float64Counter("syncworks.quotes.booked_revenue",
		metric.WithDescription("Total price of booked quotes"),
		metric.WithUnit("{USD}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create booked revenue counter: %w", err)
	}
	return m, nil
}

// Handle implements shared.EventHandler
func (m *QuoteMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	company := AttrCompanyID.String(event.CompanyID().String())
	switch e := event.(type) {
	case *quote.QuoteSubmittedEvent:
		m.submitted.Add(ctx, 1, metric.WithAttributes(company, AttrMoveSize.String(string(e.MoveSize))))
	case *quote.QuoteBookedEvent:
		m.booked.Add(ctx, 1, metric.WithAttributes(company))
		m.bookedRevenue.Add(ctx, e.TotalPrice.InexactFloat64(), metric.WithAttributes(company))
	case *quote.QuoteCompletedEvent:
		m.completed.Add(ctx, 1, metric.WithAttributes(company))
	case *quote.QuoteCancelledEvent:
		m.cancelled.Add(ctx, 1, metric.WithAttributes(company, AttrWasBooked.Bool(e.WasBooked)))
	case *quote.QuoteExpiredEvent:
		m.expired.Add(ctx, 1, metric.WithAttributes(company))
	}
	return nil
}

func (m *QuoteMetrics) EventTypes() []string {
	return []string{
		quote.EventTypeQuoteSubmitted,
		quote.EventTypeQuoteBooked,
		quote.EventTypeQuoteCompleted,
		quote.EventTypeQuoteCancelled,
		quote.EventTypeQuoteExpired,
	}
}

var _ shared.EventHandler = (*QuoteMetrics)(nil)
