package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSchedule_Validate(t *testing.T) {
	tests := []struct {
		name     string
		schedule Schedule
		wantErr  bool
	}{
		{"weekly ok", WeeklySchedule(time.Saturday, time.Sunday), false},
		{"weekly without days", WeeklySchedule(), true},
		{"weekly bad day", WeeklySchedule(time.Weekday(7)), true},
		{"monthly ok", MonthlySchedule(31), false},
		{"monthly zero", MonthlySchedule(0), true},
		{"monthly 32", MonthlySchedule(32), true},
		{"yearly feb 29", YearlySchedule(time.February, 29), false},
		{"yearly feb 30", YearlySchedule(time.February, 30), true},
		{"yearly month 13", Schedule{Recurrence: RecurrenceYearly, Month: 13, DayOfMonth: 1}, true},
		{"season range", SeasonSchedule(time.May, time.September), false},
		{"day and end month", Schedule{Recurrence: RecurrenceYearly, Month: 5, DayOfMonth: 1, EndMonth: 9}, true},
		{"specific date", SpecificDateSchedule(day(2026, 7, 4)), false},
		{"specific date missing", Schedule{Recurrence: RecurrenceSpecificDate}, true},
		{"holiday", HolidaySchedule(), false},
		{"unknown", Schedule{Recurrence: "hourly"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSchedule_Matches(t *testing.T) {
	cal := NewHolidayCalendar(nil)

	t.Run("weekly", func(t *testing.T) {
		s := WeeklySchedule(time.Saturday, time.Sunday)
		assert.True(t, s.Matches(day(2026, 6, 13), cal))
		assert.False(t, s.Matches(day(2026, 6, 15), cal))
	})

	t.Run("weekly ignores time of day", func(t *testing.T) {
		s := WeeklySchedule(time.Saturday)
		assert.True(t, s.Matches(time.Date(2026, 6, 13, 23, 30, 0, 0, time.UTC), cal))
	})

	t.Run("monthly 31st matches last day of short months", func(t *testing.T) {
		s := MonthlySchedule(31)
		assert.True(t, s.Matches(day(2026, 1, 31), cal))
		assert.True(t, s.Matches(day(2026, 4, 30), cal))
		assert.True(t, s.Matches(day(2026, 2, 28), cal))
		assert.False(t, s.Matches(day(2026, 4, 29), cal))
	})

	t.Run("yearly feb 29 in common year", func(t *testing.T) {
		s := YearlySchedule(time.February, 29)
		assert.True(t, s.Matches(day(2027, 2, 28), cal))
		assert.True(t, s.Matches(day(2028, 2, 29), cal))
		assert.False(t, s.Matches(day(2028, 2, 28), cal))
	})

	t.Run("yearly month range", func(t *testing.T) {
		s := SeasonSchedule(time.May, time.September)
		assert.True(t, s.Matches(day(2026, 5, 1), cal))
		assert.True(t, s.Matches(day(2026, 9, 30), cal))
		assert.False(t, s.Matches(day(2026, 10, 1), cal))
	})

	t.Run("yearly month range wraps year end", func(t *testing.T) {
		s := SeasonSchedule(time.November, time.February)
		assert.True(t, s.Matches(day(2026, 12, 25), cal))
		assert.True(t, s.Matches(day(2027, 1, 15), cal))
		assert.False(t, s.Matches(day(2026, 6, 15), cal))
	})

	t.Run("yearly single month", func(t *testing.T) {
		s := Schedule{Recurrence: RecurrenceYearly, Month: 12}
		assert.True(t, s.Matches(day(2026, 12, 1), cal))
		assert.False(t, s.Matches(day(2026, 11, 30), cal))
	})

	t.Run("specific date", func(t *testing.T) {
		s := SpecificDateSchedule(time.Date(2026, 7, 4, 15, 0, 0, 0, time.UTC))
		assert.True(t, s.Matches(day(2026, 7, 4), cal))
		assert.False(t, s.Matches(day(2027, 7, 4), cal))
	})

	t.Run("holiday", func(t *testing.T) {
		h, err := NewHoliday(testCompany, "Christmas", day(2020, 12, 25), true)
		assert.NoError(t, err)
		withHoliday := NewHolidayCalendar([]Holiday{*h})

		s := HolidaySchedule()
		assert.True(t, s.Matches(day(2026, 12, 25), withHoliday))
		assert.False(t, s.Matches(day(2026, 12, 25), cal))
	})
}

func TestDaysOfWeekEncoding(t *testing.T) {
	encoded := EncodeDaysOfWeek([]time.Weekday{time.Sunday, time.Saturday})
	assert.Equal(t, "0,6", encoded)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, DecodeDaysOfWeek(encoded))
	assert.Equal(t, []time.Weekday{time.Monday}, DecodeDaysOfWeek("1, x, 9"))
	assert.Nil(t, DecodeDaysOfWeek(""))
}
