package pricing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCompany = uuid.MustParse("00000000-0000-0000-0000-000000000001")

func TestNewHoliday(t *testing.T) {
	t.Run("normalizes name and date", func(t *testing.T) {
		h, err := NewHoliday(testCompany, "  independence   day ", time.Date(2026, 7, 4, 18, 0, 0, 0, time.UTC), false)

		require.NoError(t, err)
		assert.Equal(t, "Independence Day", h.Name)
		assert.Equal(t, day(2026, 7, 4), h.Date)
		assert.True(t, h.Observed)
	})

	t.Run("keeps mixed case names", func(t *testing.T) {
		h, err := NewHoliday(testCompany, "MLK Day", day(2026, 1, 19), false)

		require.NoError(t, err)
		assert.Equal(t, "MLK Day", h.Name)
	})

	t.Run("fails without name", func(t *testing.T) {
		_, err := NewHoliday(testCompany, "   ", day(2026, 7, 4), false)
		assert.Error(t, err)
	})

	t.Run("fails without date", func(t *testing.T) {
		_, err := NewHoliday(testCompany, "Labor Day", time.Time{}, false)
		assert.Error(t, err)
	})
}

func TestHoliday_FallsOn(t *testing.T) {
	fixed, _ := NewHoliday(testCompany, "Company Picnic", day(2026, 8, 14), false)
	recurring, _ := NewHoliday(testCompany, "Leap Day", day(2024, 2, 29), true)

	assert.True(t, fixed.FallsOn(day(2026, 8, 14)))
	assert.False(t, fixed.FallsOn(day(2027, 8, 14)))

	assert.True(t, recurring.FallsOn(day(2028, 2, 29)))
	assert.True(t, recurring.FallsOn(day(2027, 2, 28)))
}

func TestHolidayCalendar_SkipsUnobserved(t *testing.T) {
	h, _ := NewHoliday(testCompany, "Boxing Day", day(2026, 12, 26), false)
	h.Observed = false

	cal := NewHolidayCalendar([]Holiday{*h})
	_, ok := cal.On(day(2026, 12, 26))
	assert.False(t, ok)
}

func TestHoliday_Update(t *testing.T) {
	h, _ := NewHoliday(testCompany, "Labor Day", day(2026, 9, 7), false)

	require.NoError(t, h.Update("labor day", day(2026, 9, 8), true, false))
	assert.Equal(t, day(2026, 9, 8), h.Date)
	assert.True(t, h.RecurringYearly)
	assert.False(t, h.Observed)
	assert.Equal(t, 2, h.Version)

	assert.Error(t, h.Update("", day(2026, 9, 8), true, true))
}
