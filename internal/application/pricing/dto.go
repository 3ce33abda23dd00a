package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/pricing"
	csvimport "github.com/syncworks/backend/internal/infrastructure/import"
)

const dateLayout = "2006-01-02"

// SeasonRuleRequest is used for both create and full update
type SeasonRuleRequest struct {
	Name            string          `json:"name" binding:"required,min=1,max=100"`
	Description     string          `json:"description" binding:"max=500"`
	Recurrence      string          `json:"recurrence" binding:"required,oneof=weekly monthly yearly specific_date holiday"`
	DaysOfWeek      []int           `json:"days_of_week" binding:"omitempty,dive,weekday"`
	DayOfMonth      int             `json:"day_of_month" binding:"min=0,max=31"`
	Month           int             `json:"month" binding:"min=0,max=12"`
	EndMonth        int             `json:"end_month" binding:"min=0,max=12"`
	SpecificDate    string          `json:"specific_date" binding:"omitempty,datetime=2006-01-02"`
	AdjustmentType  string          `json:"adjustment_type" binding:"required,oneof=percentage fixed"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
	Priority        int             `json:"priority"`
	Exclusive       bool            `json:"exclusive"`
	StartDate       string          `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate         string          `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// SeasonRuleListFilter holds list query parameters
type SeasonRuleListFilter struct {
	Search         string `form:"search"`
	IsActive       *bool  `form:"is_active"`
	Recurrence     string `form:"recurrence" binding:"omitempty,oneof=weekly monthly yearly specific_date holiday"`
	AdjustmentType string `form:"adjustment_type" binding:"omitempty,oneof=percentage fixed"`
	Page           int    `form:"page" binding:"min=0"`
	PageSize       int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy        string `form:"order_by" binding:"omitempty,oneof=name priority created_at"`
	OrderDir       string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SeasonRuleResponse is the API view of a rule
type SeasonRuleResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Recurrence      string          `json:"recurrence"`
	DaysOfWeek      []int           `json:"days_of_week,omitempty"`
	DayOfMonth      int             `json:"day_of_month,omitempty"`
	Month           int             `json:"month,omitempty"`
	EndMonth        int             `json:"end_month,omitempty"`
	SpecificDate    string          `json:"specific_date,omitempty"`
	AdjustmentType  string          `json:"adjustment_type"`
	AdjustmentValue decimal.Decimal `json:"adjustment_value"`
	Priority        int             `json:"priority"`
	Exclusive       bool            `json:"exclusive"`
	IsActive        bool            `json:"is_active"`
	StartDate       string          `json:"start_date,omitempty"`
	EndDate         string          `json:"end_date,omitempty"`
	Version         int             `json:"version"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// HolidayRequest is used for both create and update
type HolidayRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=100"`
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	RecurringYearly bool   `json:"recurring_yearly"`
	Observed        *bool  `json:"observed"`
}

// HolidayListFilter holds list query parameters
type HolidayListFilter struct {
	Search          string `form:"search"`
	From            string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To              string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	RecurringYearly *bool  `form:"recurring_yearly"`
	Page            int    `form:"page" binding:"min=0"`
	PageSize        int    `form:"page_size" binding:"min=0,max=100"`
}

// HolidayResponse is the API view of a holiday
type HolidayResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Date            string    `json:"date"`
	RecurringYearly bool      `json:"recurring_yearly"`
	Observed        bool      `json:"observed"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HolidayImportResult reports a CSV import
type HolidayImportResult struct {
	TotalRows int                  `json:"total_rows"`
	Imported  int                  `json:"imported"`
	Skipped   int                  `json:"skipped"`
	Errors    []csvimport.RowError `json:"errors"`
	Truncated bool                 `json:"truncated"`
	Holidays  []HolidayResponse    `json:"holidays"`
}

// PreviewRequest asks what a base price would become on a date
type PreviewRequest struct {
	Date      string `form:"date" binding:"required,datetime=2006-01-02"`
	BasePrice string `form:"base_price" binding:"required,numeric"`
}

// CalendarRequest asks for the per-day rates over a range
type CalendarRequest struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// AppliedRuleResponse is one line of an adjustment
type AppliedRuleResponse struct {
	RuleID   uuid.UUID       `json:"rule_id"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Priority int             `json:"priority"`
	Amount   decimal.Decimal `json:"amount"`
}

// AdjustmentResponse is a priced base amount
type AdjustmentResponse struct {
	Date       string                `json:"date"`
	BasePrice  decimal.Decimal       `json:"base_price"`
	Adjustment decimal.Decimal       `json:"adjustment"`
	Percentage decimal.Decimal       `json:"percentage"`
	FinalPrice decimal.Decimal       `json:"final_price"`
	Holiday    string                `json:"holiday,omitempty"`
	Rules      []AppliedRuleResponse `json:"rules"`
}

// CalendarDayResponse is one day in the admin calendar
type CalendarDayResponse struct {
	Date       string          `json:"date"`
	Percentage decimal.Decimal `json:"percentage"`
	Fixed      decimal.Decimal `json:"fixed"`
	Holiday    string          `json:"holiday,omitempty"`
	Rules      []string        `json:"rules"`
}

// CalendarResponse covers [From, To]
type CalendarResponse struct {
	From string                `json:"from"`
	To   string                `json:"to"`
	Days []CalendarDayResponse `json:"days"`
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// ToSeasonRuleResponse converts a domain rule
func ToSeasonRuleResponse(r *pricing.SeasonRule) SeasonRuleResponse {
	resp := SeasonRuleResponse{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Recurrence:      string(r.Schedule.Recurrence),
		DayOfMonth:      r.Schedule.DayOfMonth,
		Month:           r.Schedule.Month,
		EndMonth:        r.Schedule.EndMonth,
		SpecificDate:    formatDate(r.Schedule.SpecificDate),
		AdjustmentType:  string(r.Adjustment.Type),
		AdjustmentValue: r.Adjustment.Value,
		Priority:        r.Priority,
		Exclusive:       r.Exclusive,
		IsActive:        r.IsActive,
		StartDate:       formatDate(r.StartDate),
		EndDate:         formatDate(r.EndDate),
		Version:         r.Version,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for _, d := range r.Schedule.DaysOfWeek {
		resp.DaysOfWeek = append(resp.DaysOfWeek, int(d))
	}
	return resp
}

// ToSeasonRuleResponses converts a slice of rules
func ToSeasonRuleResponses(rules []pricing.SeasonRule) []SeasonRuleResponse {
	out := make([]SeasonRuleResponse, len(rules))
	for i := range rules {
		out[i] = ToSeasonRuleResponse(&rules[i])
	}
	return out
}

// ToHolidayResponse converts a domain holiday
func ToHolidayResponse(h *pricing.Holiday) HolidayResponse {
	return HolidayResponse{
		ID:              h.ID,
		Name:            h.Name,
		Date:            h.Date.Format(dateLayout),
		RecurringYearly: h.RecurringYearly,
		Observed:        h.Observed,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
}

// ToAdjustmentResponse converts a calculated adjustment
func ToAdjustmentResponse(a pricing.SeasonAdjustment) AdjustmentResponse {
	resp := AdjustmentResponse{
		Date:       a.Date.Format(dateLayout),
		BasePrice:  a.BasePrice,
		Adjustment: a.Adjustment,
		Percentage: a.Percentage(),
		FinalPrice: a.FinalPrice,
		Holiday:    a.Holiday,
		Rules:      make([]AppliedRuleResponse, len(a.Rules)),
	}
	for i, r := range a.Rules {
		resp.Rules[i] = AppliedRuleResponse{
			RuleID:   r.RuleID,
			Name:     r.Name,
			Type:     string(r.Type),
			Value:    r.Value,
			Priority: r.Priority,
			Amount:   r.Amount,
		}
	}
	return resp
}
