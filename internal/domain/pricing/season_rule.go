package pricing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/shared"
)

// AdjustmentType is how a rule changes the price
type AdjustmentType string

const (
	AdjustmentPercentage AdjustmentType = "percentage"
	AdjustmentFixed      AdjustmentType = "fixed"
)

// IsValid returns true if the adjustment type is known
func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentPercentage || t == AdjustmentFixed
}

var (
	minPercentage = decimal.NewFromInt(-100)
	maxPercentage = decimal.NewFromInt(1000)
)

// Adjustment is the price change a rule contributes when it matches.
// Negative values are discounts.
type Adjustment struct {
	Type  AdjustmentType
	Value decimal.Decimal
}

// Percent builds a percentage adjustment
func Percent(v float64) Adjustment {
	return Adjustment{Type: AdjustmentPercentage, Value: decimal.NewFromFloat(v)}
}

// Fixed builds a fixed-amount adjustment
func Fixed(v float64) Adjustment {
	return Adjustment{Type: AdjustmentFixed, Value: decimal.NewFromFloat(v)}
}

// Validate checks type and range
func (a Adjustment) Validate() error {
	if !a.Type.IsValid() {
		return shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", "Adjustment type must be percentage or fixed")
	}
	if a.Type == AdjustmentPercentage && (a.Value.LessThan(minPercentage) || a.Value.GreaterThan(maxPercentage)) {
		return shared.NewDomainError("INVALID_ADJUSTMENT_VALUE", "Percentage adjustment must be between -100 and 1000")
	}
	return nil
}

// AmountFor returns the money this adjustment adds to base
func (a Adjustment) AmountFor(base decimal.Decimal) decimal.Decimal {
	if a.Type == AdjustmentPercentage {
		return base.Mul(a.Value).Div(decimal.NewFromInt(100)).Round(2)
	}
	return a.Value.Round(2)
}

// SeasonRule adjusts quote prices on the days its schedule matches
type SeasonRule struct {
	shared.CompanyAggregateRoot
	Name        string
	Description string
	Schedule    Schedule
	Adjustment  Adjustment
	Priority    int
	IsActive    bool
	// Exclusive rules suppress every matching rule of lower priority.
	Exclusive bool
	StartDate *time.Time
	EndDate   *time.Time
}

// NewSeasonRule creates an active rule
func NewSeasonRule(companyID uuid.UUID, name string, schedule Schedule, adjustment Adjustment) (*SeasonRule, error) {
	name = strings.TrimSpace(name)
	if err := validateRuleName(name); err != nil {
		return nil, err
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}
	if err := adjustment.Validate(); err != nil {
		return nil, err
	}
	if schedule.Recurrence == RecurrenceWeekly {
		schedule.DaysOfWeek = normalizeWeekdays(schedule.DaysOfWeek)
	}

	rule := &SeasonRule{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		Schedule:             schedule,
		Adjustment:           adjustment,
		IsActive:             true,
	}

	rule.AddDomainEvent(NewSeasonRuleCreatedEvent(rule))

	return rule, nil
}

// Update replaces name, schedule and adjustment
func (r *SeasonRule) Update(name, description string, schedule Schedule, adjustment Adjustment) error {
	name = strings.TrimSpace(name)
	if err := validateRuleName(name); err != nil {
		return err
	}
	if err := schedule.Validate(); err != nil {
		return err
	}
	if err := adjustment.Validate(); err != nil {
		return err
	}
	if schedule.Recurrence == RecurrenceWeekly {
		schedule.DaysOfWeek = normalizeWeekdays(schedule.DaysOfWeek)
	}

	r.Name = name
	r.Description = strings.TrimSpace(description)
	r.Schedule = schedule
	r.Adjustment = adjustment
	r.MarkModified()

	r.AddDomainEvent(NewSeasonRuleUpdatedEvent(r))

	return nil
}

// SetPriority sets evaluation priority; higher runs first
func (r *SeasonRule) SetPriority(priority int, exclusive bool) {
	r.Priority = priority
	r.Exclusive = exclusive
	r.MarkModified()
}

// SetWindow restricts the rule to an inclusive date window.
// Either bound may be nil.
func (r *SeasonRule) SetWindow(start, end *time.Time) error {
	if start != nil {
		s := shared.TruncateDay(*start)
		start = &s
	}
	if end != nil {
		e := shared.TruncateDay(*end)
		end = &e
	}
	if start != nil && end != nil && start.After(*end) {
		return shared.NewDomainError("INVALID_DATE_WINDOW", "Start date cannot be after end date")
	}
	r.StartDate = start
	r.EndDate = end
	r.MarkModified()
	return nil
}

// Activate enables the rule
func (r *SeasonRule) Activate() error {
	if r.IsActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Season rule is already active")
	}
	r.IsActive = true
	r.MarkModified()
	r.AddDomainEvent(NewSeasonRuleStatusChangedEvent(r))
	return nil
}

// Deactivate disables the rule
func (r *SeasonRule) Deactivate() error {
	if !r.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Season rule is already inactive")
	}
	r.IsActive = false
	r.MarkModified()
	r.AddDomainEvent(NewSeasonRuleStatusChangedEvent(r))
	return nil
}

// InWindow reports whether day is inside the effective window
func (r *SeasonRule) InWindow(day time.Time) bool {
	w := shared.DateRange{}
	if r.StartDate != nil {
		w.From = *r.StartDate
	}
	if r.EndDate != nil {
		w.To = *r.EndDate
	}
	return w.Contains(day)
}

// AppliesOn reports whether the rule is active, in window and scheduled on day
func (r *SeasonRule) AppliesOn(day time.Time, holidays HolidayCalendar) bool {
	return r.IsActive && r.InWindow(day) && r.Schedule.Matches(day, holidays)
}

func validateRuleName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Season rule name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Season rule name cannot exceed 100 characters")
	}
	return nil
}
