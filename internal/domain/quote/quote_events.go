package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/shared"
)

const AggregateTypeQuote = "Quote"

const (
	EventTypeQuoteSubmitted = "QuoteSubmitted"
	EventTypeQuoteBooked    = "QuoteBooked"
	EventTypeQuoteCompleted = "QuoteCompleted"
	EventTypeQuoteCancelled = "QuoteCancelled"
	EventTypeQuoteExpired   = "QuoteExpired"
)

// QuoteSubmittedEvent is published when a customer submits the quote form
type QuoteSubmittedEvent struct {
	shared.BaseDomainEvent
	QuoteNumber string    `json:"quote_number"`
	MoveDate    time.Time `json:"move_date"`
	MoveSize    MoveSize  `json:"move_size"`
}

func NewQuoteSubmittedEvent(q *Quote) *QuoteSubmittedEvent {
	return &QuoteSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteSubmitted, AggregateTypeQuote, q.ID, q.CompanyID),
		QuoteNumber:     q.QuoteNumber,
		MoveDate:        q.MoveDate,
		MoveSize:        q.MoveSize,
	}
}

// QuoteBookedEvent is published when the customer books the move
type QuoteBookedEvent struct {
	shared.BaseDomainEvent
	QuoteNumber string          `json:"quote_number"`
	MoveDate    time.Time       `json:"move_date"`
	TruckCount  int             `json:"truck_count"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ReferrerID  *uuid.UUID      `json:"referrer_id,omitempty"`
}

func NewQuoteBookedEvent(q *Quote) *QuoteBookedEvent {
	return &QuoteBookedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteBooked, AggregateTypeQuote, q.ID, q.CompanyID),
		QuoteNumber:     q.QuoteNumber,
		MoveDate:        q.MoveDate,
		TruckCount:      q.Crew.TruckCount,
		TotalPrice:      q.TotalPrice,
		ReferrerID:      q.ReferrerID,
	}
}

// QuoteCompletedEvent is published when the move is done
type QuoteCompletedEvent struct {
	shared.BaseDomainEvent
	QuoteNumber string          `json:"quote_number"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	ReferrerID  *uuid.UUID      `json:"referrer_id,omitempty"`
}

func NewQuoteCompletedEvent(q *Quote) *QuoteCompletedEvent {
	return &QuoteCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteCompleted, AggregateTypeQuote, q.ID, q.CompanyID),
		QuoteNumber:     q.QuoteNumber,
		TotalPrice:      q.TotalPrice,
		ReferrerID:      q.ReferrerID,
	}
}

// QuoteCancelledEvent is published when a quote is cancelled
type QuoteCancelledEvent struct {
	shared.BaseDomainEvent
	QuoteNumber string    `json:"quote_number"`
	MoveDate    time.Time `json:"move_date"`
	Reason      string    `json:"reason"`
	WasBooked   bool      `json:"was_booked"`
}

func NewQuoteCancelledEvent(q *Quote, wasBooked bool) *QuoteCancelledEvent {
	return &QuoteCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteCancelled, AggregateTypeQuote, q.ID, q.CompanyID),
		QuoteNumber:     q.QuoteNumber,
		MoveDate:        q.MoveDate,
		Reason:          q.CancelReason,
		WasBooked:       wasBooked,
	}
}

// QuoteExpiredEvent is published by the stale quote job
type QuoteExpiredEvent struct {
	shared.BaseDomainEvent
	QuoteNumber string `json:"quote_number"`
}

func NewQuoteExpiredEvent(q *Quote) *QuoteExpiredEvent {
	return &QuoteExpiredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteExpired, AggregateTypeQuote, q.ID, q.CompanyID),
		QuoteNumber:     q.QuoteNumber,
	}
}
