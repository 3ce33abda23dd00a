package pricing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/shared"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Holiday is a company holiday. Recurring holidays repeat on the same
// month and day every year.
type Holiday struct {
	shared.CompanyAggregateRoot
	Name            string
	Date            time.Time
	RecurringYearly bool
	Observed        bool
}

// NewHoliday creates a holiday on the given day
func NewHoliday(companyID uuid.UUID, name string, date time.Time, recurring bool) (*Holiday, error) {
	name = NormalizeHolidayName(name)
	if err := validateHolidayName(name); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_HOLIDAY_DATE", "Holiday date is required")
	}

	return &Holiday{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Date:                 shared.TruncateDay(date),
		RecurringYearly:      recurring,
		Observed:             true,
	}, nil
}

// Update changes the holiday's details
func (h *Holiday) Update(name string, date time.Time, recurring, observed bool) error {
	name = NormalizeHolidayName(name)
	if err := validateHolidayName(name); err != nil {
		return err
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_HOLIDAY_DATE", "Holiday date is required")
	}
	h.Name = name
	h.Date = shared.TruncateDay(date)
	h.RecurringYearly = recurring
	h.Observed = observed
	h.MarkModified()
	return nil
}

// FallsOn reports whether the holiday lands on day
func (h *Holiday) FallsOn(day time.Time) bool {
	d := shared.TruncateDay(day)
	if !h.RecurringYearly {
		return h.Date.Equal(d)
	}
	if h.Date.Month() != d.Month() {
		return false
	}
	return d.Day() == clampDay(h.Date.Day(), d.Month(), d.Year())
}

// NormalizeHolidayName trims and collapses whitespace and title-cases
// names typed entirely in lower case.
func NormalizeHolidayName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name != "" && name == strings.ToLower(name) {
		name = cases.Title(language.English).String(name)
	}
	return name
}

func validateHolidayName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_HOLIDAY_NAME", "Holiday name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_HOLIDAY_NAME", "Holiday name cannot exceed 100 characters")
	}
	return nil
}

// HolidayCalendar answers "is this day a holiday" for one company.
// Holidays that are not observed are ignored.
type HolidayCalendar struct {
	fixed     map[time.Time]Holiday
	recurring []Holiday
}

// NewHolidayCalendar indexes the holidays
func NewHolidayCalendar(holidays []Holiday) HolidayCalendar {
	cal := HolidayCalendar{fixed: make(map[time.Time]Holiday, len(holidays))}
	for _, h := range holidays {
		if !h.Observed {
			continue
		}
		if h.RecurringYearly {
			cal.recurring = append(cal.recurring, h)
			continue
		}
		cal.fixed[shared.TruncateDay(h.Date)] = h
	}
	return cal
}

// On returns the holiday falling on day, if any
func (c HolidayCalendar) On(day time.Time) (Holiday, bool) {
	d := shared.TruncateDay(day)
	if h, ok := c.fixed[d]; ok {
		return h, true
	}
	for i := range c.recurring {
		if c.recurring[i].FallsOn(d) {
			return c.recurring[i], true
		}
	}
	return Holiday{}, false
}
