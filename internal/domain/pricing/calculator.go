package pricing

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/shared"
)

// AppliedRule is one line of a season adjustment
type AppliedRule struct {
	RuleID   uuid.UUID
	Name     string
	Type     AdjustmentType
	Value    decimal.Decimal
	Priority int
	Amount   decimal.Decimal
}

// SeasonAdjustment is the result of pricing a base amount on a day
type SeasonAdjustment struct {
	Date       time.Time
	BasePrice  decimal.Decimal
	Adjustment decimal.Decimal
	FinalPrice decimal.Decimal
	Holiday    string
	Rules      []AppliedRule
}

// Percentage returns the total adjustment relative to the base price
func (a SeasonAdjustment) Percentage() decimal.Decimal {
	if a.BasePrice.IsZero() {
		return decimal.Zero
	}
	return a.Adjustment.Div(a.BasePrice).Mul(decimal.NewFromInt(100)).Round(2)
}

// RulesForDate returns the rules that apply on day in evaluation order:
// priority descending, then oldest first. When an exclusive rule matches,
// matching rules with lower priority than it are dropped.
func RulesForDate(rules []SeasonRule, day time.Time, holidays HolidayCalendar) []SeasonRule {
	matched := make([]SeasonRule, 0, len(rules))
	for i := range rules {
		if rules[i].AppliesOn(day, holidays) {
			matched = append(matched, rules[i])
		}
	}

	slices.SortStableFunc(matched, func(a, b SeasonRule) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	for i := range matched {
		if !matched[i].Exclusive {
			continue
		}
		cut := matched[i].Priority
		end := i + 1
		for end < len(matched) && matched[end].Priority >= cut {
			end++
		}
		return matched[:end]
	}
	return matched
}

// CalculateAdjustment prices basePrice on day. Percentages are taken of
// the base price and summed rather than compounded; fixed amounts are
// added as is. Everything is computed from the base rounded to cents, so
// BasePrice plus Adjustment equals FinalPrice. The final price never drops
// below zero.
func CalculateAdjustment(basePrice decimal.Decimal, day time.Time, rules []SeasonRule, holidays HolidayCalendar) SeasonAdjustment {
	base := basePrice.Round(2)
	result := SeasonAdjustment{
		Date:       shared.TruncateDay(day),
		BasePrice:  base,
		Adjustment: decimal.Zero,
		Rules:      []AppliedRule{},
	}
	if h, ok := holidays.On(day); ok {
		result.Holiday = h.Name
	}

	for _, r := range RulesForDate(rules, day, holidays) {
		amount := r.Adjustment.AmountFor(base)
		result.Adjustment = result.Adjustment.Add(amount)
		result.Rules = append(result.Rules, AppliedRule{
			RuleID:   r.ID,
			Name:     r.Name,
			Type:     r.Adjustment.Type,
			Value:    r.Adjustment.Value,
			Priority: r.Priority,
			Amount:   amount,
		})
	}

	final := base.Add(result.Adjustment)
	if final.IsNegative() {
		final = decimal.Zero
	}
	result.FinalPrice = final
	return result
}

// DayRates summarises the rules in effect on one day without a base price
type DayRates struct {
	Date       time.Time
	Percentage decimal.Decimal
	Fixed      decimal.Decimal
	Holiday    string
	RuleNames  []string
}

// RatesForRange builds DayRates for every day in [from, to]
func RatesForRange(from, to time.Time, rules []SeasonRule, holidays HolidayCalendar) []DayRates {
	start := shared.TruncateDay(from)
	end := shared.TruncateDay(to)
	if end.Before(start) {
		return []DayRates{}
	}

	out := make([]DayRates, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := DayRates{Date: d, Percentage: decimal.Zero, Fixed: decimal.Zero, RuleNames: []string{}}
		if h, ok := holidays.On(d); ok {
			day.Holiday = h.Name
		}
		for _, r := range RulesForDate(rules, d, holidays) {
			if r.Adjustment.Type == AdjustmentPercentage {
				day.Percentage = day.Percentage.Add(r.Adjustment.Value)
			} else {
				day.Fixed = day.Fixed.Add(r.Adjustment.Value)
			}
			day.RuleNames = append(day.RuleNames, r.Name)
		}
		out = append(out, day)
	}
	return out
}
