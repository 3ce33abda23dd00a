package pricing

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/syncworks/backend/internal/domain/shared"
)

// Recurrence is how a season rule repeats on the calendar
type Recurrence string

const (
	RecurrenceWeekly       Recurrence = "weekly"
	RecurrenceMonthly      Recurrence = "monthly"
	RecurrenceYearly       Recurrence = "yearly"
	RecurrenceSpecificDate Recurrence = "specific_date"
	RecurrenceHoliday      Recurrence = "holiday"
)

// IsValid returns true if the recurrence is known
func (r Recurrence) IsValid() bool {
	switch r {
	case RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly, RecurrenceSpecificDate, RecurrenceHoliday:
		return true
	}
	return false
}

// Schedule describes which calendar days a rule applies to.
// Only the fields relevant to Recurrence are meaningful.
type Schedule struct {
	Recurrence   Recurrence
	DaysOfWeek   []time.Weekday // weekly
	DayOfMonth   int            // monthly, yearly (0 on yearly = month range)
	Month        int            // yearly
	EndMonth     int            // yearly month range, may wrap past December
	SpecificDate *time.Time     // specific_date
}

// WeeklySchedule matches the given weekdays
func WeeklySchedule(days ...time.Weekday) Schedule {
	return Schedule{Recurrence: RecurrenceWeekly, DaysOfWeek: days}
}

// MonthlySchedule matches one day of every month
func MonthlySchedule(day int) Schedule {
	return Schedule{Recurrence: RecurrenceMonthly, DayOfMonth: day}
}

// YearlySchedule matches one day every year
func YearlySchedule(month time.Month, day int) Schedule {
	return Schedule{Recurrence: RecurrenceYearly, Month: int(month), DayOfMonth: day}
}

// SeasonSchedule matches every day from the start of month `from` to the end of month `to`
func SeasonSchedule(from, to time.Month) Schedule {
	return Schedule{Recurrence: RecurrenceYearly, Month: int(from), EndMonth: int(to)}
}

// SpecificDateSchedule matches exactly one calendar day
func SpecificDateSchedule(day time.Time) Schedule {
	d := shared.TruncateDay(day)
	return Schedule{Recurrence: RecurrenceSpecificDate, SpecificDate: &d}
}

// HolidaySchedule matches every company holiday
func HolidaySchedule() Schedule {
	return Schedule{Recurrence: RecurrenceHoliday}
}

// Validate checks the recurrence parameters
func (s Schedule) Validate() error {
	switch s.Recurrence {
	case RecurrenceWeekly:
		if len(s.DaysOfWeek) == 0 {
			return shared.NewDomainError("INVALID_SCHEDULE", "Weekly rules need at least one day of week")
		}
		for _, d := range s.DaysOfWeek {
			if d < time.Sunday || d > time.Saturday {
				return shared.NewDomainError("INVALID_SCHEDULE", "Day of week must be between 0 (Sunday) and 6 (Saturday)")
			}
		}
	case RecurrenceMonthly:
		if s.DayOfMonth < 1 || s.DayOfMonth > 31 {
			return shared.NewDomainError("INVALID_SCHEDULE", "Day of month must be between 1 and 31")
		}
	case RecurrenceYearly:
		if s.Month < 1 || s.Month > 12 {
			return shared.NewDomainError("INVALID_SCHEDULE", "Month must be between 1 and 12")
		}
		if s.DayOfMonth < 0 || s.DayOfMonth > daysIn(time.Month(s.Month), 2024) {
			return shared.NewDomainError("INVALID_SCHEDULE", "Day of month is out of range for the month")
		}
		if s.EndMonth < 0 || s.EndMonth > 12 {
			return shared.NewDomainError("INVALID_SCHEDULE", "End month must be between 1 and 12")
		}
		if s.DayOfMonth > 0 && s.EndMonth > 0 {
			return shared.NewDomainError("INVALID_SCHEDULE", "Yearly rules take either a day of month or an end month, not both")
		}
	case RecurrenceSpecificDate:
		if s.SpecificDate == nil || s.SpecificDate.IsZero() {
			return shared.NewDomainError("INVALID_SCHEDULE", "Specific date rules need a date")
		}
	case RecurrenceHoliday:
	default:
		return shared.NewDomainError("INVALID_RECURRENCE", "Recurrence must be weekly, monthly, yearly, specific_date or holiday")
	}
	return nil
}

// Matches reports whether the schedule covers day
func (s Schedule) Matches(day time.Time, holidays HolidayCalendar) bool {
	d := shared.TruncateDay(day)
	switch s.Recurrence {
	case RecurrenceWeekly:
		return slices.Contains(s.DaysOfWeek, d.Weekday())
	case RecurrenceMonthly:
		return d.Day() == clampDay(s.DayOfMonth, d.Month(), d.Year())
	case RecurrenceYearly:
		if s.DayOfMonth == 0 {
			return inMonthRange(int(d.Month()), s.Month, s.EndMonth)
		}
		return int(d.Month()) == s.Month && d.Day() == clampDay(s.DayOfMonth, d.Month(), d.Year())
	case RecurrenceSpecificDate:
		return s.SpecificDate != nil && shared.TruncateDay(*s.SpecificDate).Equal(d)
	case RecurrenceHoliday:
		_, ok := holidays.On(d)
		return ok
	}
	return false
}

// EncodeDaysOfWeek renders weekdays as "0,6"
func EncodeDaysOfWeek(days []time.Weekday) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

// DecodeDaysOfWeek parses the "0,6" form, ignoring junk entries
func DecodeDaysOfWeek(s string) []time.Weekday {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	days := make([]time.Weekday, 0, 7)
	for _, p := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}

func normalizeWeekdays(days []time.Weekday) []time.Weekday {
	out := slices.Clone(days)
	slices.Sort(out)
	return slices.Compact(out)
}

func inMonthRange(m, from, to int) bool {
	if to == 0 {
		to = from
	}
	if from <= to {
		return m >= from && m <= to
	}
	// wraps past December, e.g. Nov..Feb
	return m >= from || m <= to
}

// clampDay maps a configured day onto months that are too short,
// so the 31st means "last day" and Feb 29 means Feb 28 in common years.
func clampDay(day int, month time.Month, year int) int {
	last := daysIn(month, year)
	if day > last {
		return last
	}
	return day
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
