package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRule(t *testing.T, name string, s Schedule, a Adjustment, priority int) SeasonRule {
	t.Helper()
	r, err := NewSeasonRule(testCompany, name, s, a)
	require.NoError(t, err)
	r.Priority = priority
	return *r
}

func TestRulesForDate_OrdersByPriority(t *testing.T) {
	weekend := mustRule(t, "Weekend", WeeklySchedule(time.Saturday, time.Sunday), Percent(10), 1)
	summer := mustRule(t, "Summer", SeasonSchedule(time.May, time.September), Percent(15), 5)
	monthEnd := mustRule(t, "Month end", MonthlySchedule(31), Fixed(50), 3)

	got := RulesForDate([]SeasonRule{weekend, summer, monthEnd}, day(2026, 5, 31), NewHolidayCalendar(nil))

	require.Len(t, got, 3)
	assert.Equal(t, "Summer", got[0].Name)
	assert.Equal(t, "Month end", got[1].Name)
	assert.Equal(t, "Weekend", got[2].Name)
}

func TestRulesForDate_TiesBreakOnCreation(t *testing.T) {
	first := mustRule(t, "First", WeeklySchedule(time.Saturday), Percent(5), 1)
	second := mustRule(t, "Second", WeeklySchedule(time.Saturday), Percent(5), 1)
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	got := RulesForDate([]SeasonRule{second, first}, day(2026, 6, 13), NewHolidayCalendar(nil))

	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Name)
}

func TestRulesForDate_SkipsInactiveAndOutOfWindow(t *testing.T) {
	inactive := mustRule(t, "Inactive", WeeklySchedule(time.Saturday), Percent(5), 1)
	inactive.IsActive = false

	windowed := mustRule(t, "Windowed", WeeklySchedule(time.Saturday), Percent(5), 1)
	start := day(2026, 7, 1)
	require.NoError(t, windowed.SetWindow(&start, nil))

	got := RulesForDate([]SeasonRule{inactive, windowed}, day(2026, 6, 13), NewHolidayCalendar(nil))
	assert.Empty(t, got)

	got = RulesForDate([]SeasonRule{inactive, windowed}, day(2026, 7, 4), NewHolidayCalendar(nil))
	assert.Len(t, got, 1)
}

func TestRulesForDate_Exclusive(t *testing.T) {
	holiday, err := NewHoliday(testCompany, "Independence Day", day(2026, 7, 4), false)
	require.NoError(t, err)
	cal := NewHolidayCalendar([]Holiday{*holiday})

	holidayRule := mustRule(t, "Holiday", HolidaySchedule(), Percent(25), 10)
	holidayRule.Exclusive = true
	peer := mustRule(t, "Peer", WeeklySchedule(time.Saturday), Fixed(20), 10)
	weekend := mustRule(t, "Weekend", WeeklySchedule(time.Saturday), Percent(10), 1)

	got := RulesForDate([]SeasonRule{weekend, peer, holidayRule}, day(2026, 7, 4), cal)

	require.Len(t, got, 2)
	names := []string{got[0].Name, got[1].Name}
	assert.ElementsMatch(t, []string{"Holiday", "Peer"}, names)
}

func TestCalculateAdjustment(t *testing.T) {
	base := decimal.NewFromInt(1000)
	cal := NewHolidayCalendar(nil)

	t.Run("no rules", func(t *testing.T) {
		adj := CalculateAdjustment(base, day(2026, 6, 15), nil, cal)

		assert.True(t, adj.Adjustment.IsZero())
		assert.True(t, adj.FinalPrice.Equal(base))
		assert.Empty(t, adj.Rules)
	})

	t.Run("percentages are summed against base", func(t *testing.T) {
		rules := []SeasonRule{
			mustRule(t, "Weekend", WeeklySchedule(time.Saturday), Percent(10), 1),
			mustRule(t, "Summer", SeasonSchedule(time.June, time.August), Percent(20), 2),
		}

		adj := CalculateAdjustment(base, day(2026, 6, 13), rules, cal)

		assert.Equal(t, "300", adj.Adjustment.String())
		assert.Equal(t, "1300", adj.FinalPrice.String())
		assert.Equal(t, "30", adj.Percentage().String())
		require.Len(t, adj.Rules, 2)
		assert.Equal(t, "Summer", adj.Rules[0].Name)
		assert.Equal(t, "200", adj.Rules[0].Amount.String())
	})

	t.Run("mixes fixed and percentage", func(t *testing.T) {
		rules := []SeasonRule{
			mustRule(t, "Weekend", WeeklySchedule(time.Saturday), Percent(10), 1),
			mustRule(t, "Stairs fee", WeeklySchedule(time.Saturday), Fixed(75.5), 0),
		}

		adj := CalculateAdjustment(base, day(2026, 6, 13), rules, cal)

		assert.Equal(t, "175.5", adj.Adjustment.String())
		assert.Equal(t, "1175.5", adj.FinalPrice.String())
	})

	t.Run("discounts never go below zero", func(t *testing.T) {
		rules := []SeasonRule{
			mustRule(t, "Free day", SpecificDateSchedule(day(2026, 6, 15)), Percent(-100), 1),
			mustRule(t, "Extra off", SpecificDateSchedule(day(2026, 6, 15)), Fixed(-50), 0),
		}

		adj := CalculateAdjustment(base, day(2026, 6, 15), rules, cal)

		assert.True(t, adj.FinalPrice.IsZero())
		assert.Equal(t, "-1050", adj.Adjustment.String())
	})

	t.Run("rounds to cents", func(t *testing.T) {
		rules := []SeasonRule{
			mustRule(t, "Odd", WeeklySchedule(time.Monday), Percent(3.333), 1),
		}

		adj := CalculateAdjustment(decimal.RequireFromString("199.99"), day(2026, 6, 15), rules, cal)

		assert.Equal(t, "6.67", adj.Adjustment.String())
		assert.Equal(t, "206.66", adj.FinalPrice.String())
	})

	t.Run("sub-cent base prices from the rounded base", func(t *testing.T) {
		rules := []SeasonRule{
			mustRule(t, "Peak", WeeklySchedule(time.Monday), Percent(50), 1),
		}

		adj := CalculateAdjustment(decimal.RequireFromString("100.005"), day(2026, 6, 15), rules, cal)

		assert.Equal(t, "100.01", adj.BasePrice.String())
		assert.Equal(t, "50.01", adj.Adjustment.String())
		assert.Equal(t, "150.02", adj.FinalPrice.String())
		assert.True(t, adj.BasePrice.Add(adj.Adjustment).Equal(adj.FinalPrice))
	})

	t.Run("reports holiday name", func(t *testing.T) {
		h, _ := NewHoliday(testCompany, "Christmas", day(2026, 12, 25), false)
		adj := CalculateAdjustment(base, day(2026, 12, 25), nil, NewHolidayCalendar([]Holiday{*h}))
		assert.Equal(t, "Christmas", adj.Holiday)
	})
}

func TestRatesForRange(t *testing.T) {
	rules := []SeasonRule{
		mustRule(t, "Weekend", WeeklySchedule(time.Saturday, time.Sunday), Percent(10), 1),
		mustRule(t, "Sunday fee", WeeklySchedule(time.Sunday), Fixed(40), 0),
	}

	rates := RatesForRange(day(2026, 6, 12), day(2026, 6, 15), rules, NewHolidayCalendar(nil))

	require.Len(t, rates, 4)
	assert.True(t, rates[0].Percentage.IsZero())
	assert.Equal(t, "10", rates[1].Percentage.String())
	assert.Equal(t, "40", rates[2].Fixed.String())
	assert.Equal(t, []string{"Weekend", "Sunday fee"}, rates[2].RuleNames)
	assert.Empty(t, rates[3].RuleNames)

	assert.Empty(t, RatesForRange(day(2026, 6, 15), day(2026, 6, 12), rules, NewHolidayCalendar(nil)))
}
