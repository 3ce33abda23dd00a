package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	quoteapp "github.com/syncworks/backend/internal/application/quote"
	schedulingapp "github.com/syncworks/backend/internal/application/scheduling"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const failQuoteUpdate = "test:fail_quote_update"

func TestGormBookingScope(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	co, err := company.NewCompany("acme-moving", "Acme Moving")
	require.NoError(t, err)
	co.Timezone = "UTC"
	companies := NewGormCompanyRepository(db)
	require.NoError(t, companies.Save(ctx, co))

	truck, err := fleet.NewTruck(co.ID, "T-26", "26ft box")
	require.NoError(t, err)
	trucks := NewGormTruckRepository(db)
	require.NoError(t, trucks.Save(ctx, truck))

	quotes := NewGormQuoteRepository(db)
	q := newRepoTestQuote(t, co.ID, "Dana Whitfield", shared.TruncateDay(time.Now().UTC().AddDate(0, 0, 10)))
	require.NoError(t, q.MarkQuoted())
	require.NoError(t, quotes.Save(ctx, q))

	assignments := NewGormTruckAssignmentRepository(db)
	scheduler := schedulingapp.NewSchedulingService(NewGormShiftRepository(db), assignments, trucks,
		NewGormEmployeeRepository(db), quotes, nil, nil)
	svc := quoteapp.NewQuoteService(quotes, companies, NewGormReferrerRepository(db), nil,
		quoteapp.WithTruckScheduler(scheduler),
		quoteapp.WithBookingScope(NewGormBookingScope(&Database{DB: db}, nil)),
	)
	req := quoteapp.BookQuoteRequest{TruckIDs: []uuid.UUID{truck.ID}}

	t.Run("quote save failure rolls back truck reservations", func(t *testing.T) {
		require.NoError(t, db.Callback().Update().Before("gorm:update").Register(failQuoteUpdate, func(tx *gorm.DB) {
			if tx.Statement.Table == "quotes" {
				_ = tx.AddError(errors.New("disk full"))
			}
		}))
		defer func() { _ = db.Callback().Update().Remove(failQuoteUpdate) }()

		_, err := svc.Book(ctx, co.ID, q.ID, req)
		require.Error(t, err)

		held, err := assignments.FindForQuote(ctx, co.ID, q.ID)
		require.NoError(t, err)
		assert.Empty(t, held, "no truck stays reserved for an unbooked quote")

		stored, err := quotes.FindByIDForCompany(ctx, co.ID, q.ID)
		require.NoError(t, err)
		assert.Equal(t, quote.StatusQuoted, stored.Status)
	})

	t.Run("commit stores quote and reservation together", func(t *testing.T) {
		resp, err := svc.Book(ctx, co.ID, q.ID, req)
		require.NoError(t, err)
		assert.Equal(t, "booked", resp.Status)

		held, err := assignments.FindForQuote(ctx, co.ID, q.ID)
		require.NoError(t, err)
		require.Len(t, held, 1)
		assert.Equal(t, truck.ID, held[0].TruckID)

		stored, err := quotes.FindByIDForCompany(ctx, co.ID, q.ID)
		require.NoError(t, err)
		assert.Equal(t, quote.StatusBooked, stored.Status)
		assert.True(t, stored.TotalPrice.GreaterThan(decimal.Zero))
	})
}
