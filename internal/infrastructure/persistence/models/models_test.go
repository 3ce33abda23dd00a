package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syncworks/backend/internal/domain/pricing"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/scheduling"
)

func TestStringList(t *testing.T) {
	t.Run("nil is stored as an empty array", func(t *testing.T) {
		v, err := StringList(nil).Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("scans strings and bytes", func(t *testing.T) {
		var l StringList
		require.NoError(t, l.Scan(`["Weekend","Summer"]`))
		assert.Equal(t, StringList{"Weekend", "Summer"}, l)

		require.NoError(t, l.Scan([]byte(`["a"]`)))
		assert.Equal(t, StringList{"a"}, l)

		require.NoError(t, l.Scan(nil))
		assert.Empty(t, l)
	})

	t.Run("rejects other types", func(t *testing.T) {
		var l StringList
		assert.Error(t, l.Scan(42))
	})
}

func TestSeasonRuleModel_RoundTrip(t *testing.T) {
	companyID := uuid.New()
	rule, err := pricing.NewSeasonRule(companyID, "Weekend", pricing.WeeklySchedule(time.Sunday, time.Saturday), pricing.Percent(12.5))
	require.NoError(t, err)
	rule.SetPriority(3, true)

	m := SeasonRuleModelFromDomain(rule)
	assert.Equal(t, "0,6", m.DaysOfWeek)
	assert.Equal(t, pricing.RecurrenceWeekly, m.Recurrence)
	assert.Equal(t, companyID, m.CompanyID)

	back := m.ToDomain()
	assert.Equal(t, rule.ID, back.ID)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, back.Schedule.DaysOfWeek)
	assert.True(t, back.Adjustment.Value.Equal(decimal.NewFromFloat(12.5)))
	assert.Equal(t, 3, back.Priority)
	assert.True(t, back.Exclusive)
	assert.True(t, back.IsActive)
	assert.Empty(t, back.GetDomainEvents())
}

func TestShiftModel_ClockMinutes(t *testing.T) {
	start, err := scheduling.ParseClock("07:45")
	require.NoError(t, err)
	end, err := scheduling.ParseClock("15:15")
	require.NoError(t, err)
	shift, err := scheduling.NewShift(uuid.New(), uuid.New(), time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC), start, end)
	require.NoError(t, err)

	m := ShiftModelFromDomain(shift)
	assert.Equal(t, 465, m.StartMinute)
	assert.Equal(t, 915, m.EndMinute)
	assert.Equal(t, "15:15", m.ToDomain().End.String())
}

func TestQuoteModel_RoundTrip(t *testing.T) {
	q, err := quote.NewQuote(uuid.New(),
		quote.Customer{Name: "Dana Whitfield", Email: "dana@example.com"},
		quote.Location{Street: "12 Elm St", City: "Springfield"},
		quote.Location{Street: "400 Oak Ave", City: "Chatham", PostalCode: "62629"},
		time.Now().AddDate(0, 0, 7), quote.MoveSizeStudio, quote.Crew{})
	require.NoError(t, err)

	m := QuoteModelFromDomain(q)
	assert.Equal(t, "Chatham", m.DestCity)
	assert.Equal(t, "62629", m.DestPostalCode)

	back := m.ToDomain()
	assert.Equal(t, q.QuoteNumber, back.QuoteNumber)
	assert.Equal(t, q.Destination, back.Destination)
	assert.Equal(t, q.Crew.Size, back.Crew.Size)
	assert.Equal(t, quote.StatusPending, back.Status)
}
