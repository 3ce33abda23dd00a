package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/pricing"
	"github.com/syncworks/backend/internal/domain/shared"
)

// DefaultMaxCalendarDays bounds the calendar view
const DefaultMaxCalendarDays = 92

// PricingService resolves season rules against a company's holiday calendar
type PricingService struct {
	ruleRepo        pricing.SeasonRuleRepository
	holidayRepo     pricing.HolidayRepository
	maxCalendarDays int
}

// NewPricingService creates a new PricingService. maxCalendarDays <= 0 uses the default.
func NewPricingService(ruleRepo pricing.SeasonRuleRepository, holidayRepo pricing.HolidayRepository, maxCalendarDays int) *PricingService {
	if maxCalendarDays <= 0 {
		maxCalendarDays = DefaultMaxCalendarDays
	}
	return &PricingService{
		ruleRepo:        ruleRepo,
		holidayRepo:     holidayRepo,
		maxCalendarDays: maxCalendarDays,
	}
}

// Calculate prices base on day using the company's active rules
func (s *PricingService) Calculate(ctx context.Context, companyID uuid.UUID, base decimal.Decimal, day time.Time) (pricing.SeasonAdjustment, error) {
	day = shared.TruncateDay(day)
	rules, calendar, err := s.load(ctx, companyID, day, day)
	if err != nil {
		return pricing.SeasonAdjustment{}, err
	}
	return pricing.CalculateAdjustment(base, day, rules, calendar), nil
}

// Preview is Calculate for the admin price preview
func (s *PricingService) Preview(ctx context.Context, companyID uuid.UUID, req PreviewRequest) (*AdjustmentResponse, error) {
	day, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	base, err := decimal.NewFromString(req.BasePrice)
	if err != nil || base.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BASE_PRICE", "base_price must be a non-negative number")
	}

	adj, err := s.Calculate(ctx, companyID, base, day)
	if err != nil {
		return nil, err
	}
	resp := ToAdjustmentResponse(adj)
	return &resp, nil
}

// Calendar returns the combined rule rates for each day in [from, to]
func (s *PricingService) Calendar(ctx context.Context, companyID uuid.UUID, req CalendarRequest) (*CalendarResponse, error) {
	from, err := parseDate("from", req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("to", req.To)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "to must not be before from")
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > s.maxCalendarDays {
		return nil, shared.NewDomainError("DATE_RANGE_TOO_LARGE",
			fmt.Sprintf("Calendar range cannot exceed %d days", s.maxCalendarDays))
	}

	rules, calendar, err := s.load(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}

	rates := pricing.RatesForRange(from, to, rules, calendar)
	resp := &CalendarResponse{
		From: req.From,
		To:   req.To,
		Days: make([]CalendarDayResponse, len(rates)),
	}
	for i, d := range rates {
		resp.Days[i] = CalendarDayResponse{
			Date:       d.Date.Format(dateLayout),
			Percentage: d.Percentage,
			Fixed:      d.Fixed,
			Holiday:    d.Holiday,
			Rules:      d.RuleNames,
		}
	}
	return resp, nil
}

func (s *PricingService) load(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]pricing.SeasonRule, pricing.HolidayCalendar, error) {
	rules, err := s.ruleRepo.FindActiveForCompany(ctx, companyID)
	if err != nil {
		return nil, pricing.HolidayCalendar{}, err
	}
	holidays, err := s.holidayRepo.FindForRange(ctx, companyID, from, to)
	if err != nil {
		return nil, pricing.HolidayCalendar{}, err
	}
	return rules, pricing.NewHolidayCalendar(holidays), nil
}
