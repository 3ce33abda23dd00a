//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	fleetapp "github.com/syncworks/backend/internal/application/fleet"
	pricingapp "github.com/syncworks/backend/internal/application/pricing"
	quoteapp "github.com/syncworks/backend/internal/application/quote"
	"github.com/syncworks/backend/internal/application/report"
	schedulingapp "github.com/syncworks/backend/internal/application/scheduling"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/event"
	"github.com/syncworks/backend/internal/infrastructure/persistence"
	"github.com/syncworks/backend/tests/testutil"
	"go.uber.org/zap"
)

type flowEnv struct {
	quotes     *quoteapp.QuoteService
	scheduling *schedulingapp.SchedulingService
	trucks     *fleetapp.TruckService
	dashboards *report.DashboardService
	events     *testutil.RecordingHandler
}

func newFlowEnv(tdb *TestDB) *flowEnv {
	log := zap.NewNop()
	db := tdb.DB
	bus := event.NewInMemoryEventBus(log)

	companyRepo := persistence.NewGormCompanyRepository(db)
	referrerRepo := persistence.NewGormReferrerRepository(db)
	dashboardRepo := persistence.NewGormDashboardRepository(db)
	truckRepo := persistence.NewGormTruckRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)
	quoteRepo := persistence.NewGormQuoteRepository(db)

	pricing := pricingapp.NewPricingService(
		persistence.NewGormSeasonRuleRepository(db),
		persistence.NewGormHolidayRepository(db),
		92,
	)
	scheduling := schedulingapp.NewSchedulingService(
		persistence.NewGormShiftRepository(db),
		persistence.NewGormTruckAssignmentRepository(db),
		truckRepo, employeeRepo, quoteRepo, bus, log,
	)
	bus.Subscribe(schedulingapp.NewQuoteCancelledHandler(scheduling, log))
	events := testutil.NewRecordingHandler(quote.EventTypeQuoteSubmitted, quote.EventTypeQuoteBooked, quote.EventTypeQuoteCancelled)
	bus.Subscribe(events)

	return &flowEnv{
		quotes: quoteapp.NewQuoteService(quoteRepo, companyRepo, referrerRepo, pricing,
			quoteapp.WithPublisher(bus),
			quoteapp.WithTruckScheduler(scheduling),
			quoteapp.WithBookingScope(persistence.NewGormBookingScope(&persistence.Database{DB: db}, log)),
			quoteapp.WithLogger(log),
		),
		scheduling: scheduling,
		trucks:     fleetapp.NewTruckService(truckRepo, bus),
		dashboards: report.NewDashboardService(dashboardRepo, quoteRepo, companyRepo, referrerRepo, nil, 0, log),
		events:     events,
	}
}

func submitRequest(moveDate string) quoteapp.SubmitQuoteRequest {
	return quoteapp.SubmitQuoteRequest{
		Customer:    quoteapp.CustomerInput{Name: "Dana Reyes", Email: "dana@example.com"},
		Origin:      quoteapp.AddressInput{Street: "1 Main St", City: "Springfield", State: "IL"},
		Destination: quoteapp.AddressInput{Street: "9 Elm St", City: "Shelbyville", State: "IL"},
		MoveDate:    moveDate,
		MoveSize:    "2br",
	}
}

func TestQuoteFlow_BookAndCancel(t *testing.T) {
	tdb := NewSharedTestDB(t)
	tdb.CleanTables()
	ctx := context.Background()
	env := newFlowEnv(tdb)

	companyID := tdb.CreateTestCompany("acme")
	moveDate := time.Now().UTC().AddDate(0, 0, 21).Format("2006-01-02")

	truck, err := env.trucks.Create(ctx, companyID, fleetapp.CreateTruckRequest{Code: "T-26", Name: "26ft box"})
	require.NoError(t, err)

	submitted, err := env.quotes.Submit(ctx, "acme", submitRequest(moveDate))
	require.NoError(t, err)
	assert.True(t, submitted.TotalPrice.IsPositive())
	assert.Empty(t, submitted.AppliedRules)

	q, err := env.quotes.GetByNumber(ctx, companyID, submitted.QuoteNumber)
	require.NoError(t, err)
	assert.Equal(t, "pending", q.Status)

	_, err = env.quotes.MarkQuoted(ctx, companyID, q.ID)
	require.NoError(t, err)
	booked, err := env.quotes.Book(ctx, companyID, q.ID, quoteapp.BookQuoteRequest{TruckIDs: []uuid.UUID{truck.ID}})
	require.NoError(t, err)
	assert.Equal(t, "booked", booked.Status)

	assignments, err := env.scheduling.ListAssignments(ctx, companyID, q.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, truck.ID, assignments[0].TruckID)
	assert.Equal(t, moveDate, assignments[0].Date)

	t.Run("truck cannot be double booked", func(t *testing.T) {
		second, err := env.quotes.Submit(ctx, "acme", submitRequest(moveDate))
		require.NoError(t, err)
		other, err := env.quotes.GetByNumber(ctx, companyID, second.QuoteNumber)
		require.NoError(t, err)
		_, err = env.quotes.MarkQuoted(ctx, companyID, other.ID)
		require.NoError(t, err)

		_, err = env.quotes.Book(ctx, companyID, other.ID, quoteapp.BookQuoteRequest{TruckIDs: []uuid.UUID{truck.ID}})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TRUCK_ALREADY_ASSIGNED", domainErr.Code)

		reloaded, err := env.quotes.GetByID(ctx, companyID, other.ID)
		require.NoError(t, err)
		assert.Equal(t, "quoted", reloaded.Status)
	})

	cancelled, err := env.quotes.Cancel(ctx, companyID, q.ID, quoteapp.CancelQuoteRequest{Reason: "customer moved the date"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	assignments, err = env.scheduling.ListAssignments(ctx, companyID, q.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments, "cancelling a booked quote releases its trucks")

	dash, err := env.dashboards.AdminDashboard(ctx, companyID, report.DashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), dash.QuoteCounts["cancelled"])
	assert.Equal(t, int64(1), dash.QuoteCounts["quoted"])

	assert.Equal(t, []string{
		quote.EventTypeQuoteSubmitted,
		quote.EventTypeQuoteBooked,
		quote.EventTypeQuoteSubmitted,
		quote.EventTypeQuoteCancelled,
	}, env.events.HandledTypes())
}

func TestQuoteFlow_UnknownCompany(t *testing.T) {
	tdb := NewSharedTestDB(t)
	env := newFlowEnv(tdb)

	_, err := env.quotes.Submit(context.Background(), "no-such-company", submitRequest(time.Now().AddDate(0, 0, 7).Format("2006-01-02")))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
