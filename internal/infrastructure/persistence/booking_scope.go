package persistence

import (
	"context"

	quoteapp "github.com/syncworks/backend/internal/application/quote"
	schedulingapp "github.com/syncworks/backend/internal/application/scheduling"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormBookingScope runs a booking in one database transaction. Truck
// reservations and the quote row commit or roll back together.
type GormBookingScope struct {
	db     *Database
	logger *zap.Logger
}

// NewGormBookingScope creates a GormBookingScope
func NewGormBookingScope(db *Database, logger *zap.Logger) *GormBookingScope {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormBookingScope{db: db, logger: logger}
}

// Execute runs fn inside a transaction. If fn returns an error the
// transaction is rolled back.
func (s *GormBookingScope) Execute(ctx context.Context, publisher shared.EventPublisher, fn func(repos quoteapp.BookingRepositories) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormBookingRepositories{tx: tx.WithContext(ctx), publisher: publisher, logger: s.logger})
	})
}

// gormBookingRepositories hands out repositories bound to one transaction
type gormBookingRepositories struct {
	tx        *gorm.DB
	publisher shared.EventPublisher
	logger    *zap.Logger
}

func (r *gormBookingRepositories) QuoteRepo() quote.QuoteRepository {
	return NewGormQuoteRepository(r.tx)
}

// Trucks returns a scheduling service whose every repository uses the
// transaction, so reservation checks see rows written earlier in it
func (r *gormBookingRepositories) Trucks() quoteapp.TruckScheduler {
	return schedulingapp.NewSchedulingService(
		NewGormShiftRepository(r.tx),
		NewGormTruckAssignmentRepository(r.tx),
		NewGormTruckRepository(r.tx),
		NewGormEmployeeRepository(r.tx),
		NewGormQuoteRepository(r.tx),
		r.publisher,
		r.logger,
	)
}

var _ quoteapp.BookingScope = (*GormBookingScope)(nil)
var _ quoteapp.BookingRepositories = (*gormBookingRepositories)(nil)
