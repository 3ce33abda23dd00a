package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// These are CQRS read models for the admin and referrer dashboards.
// They are computed by SQL aggregation and never persisted.

// RevenueSummary aggregates quote money for a period, keyed on move date
type RevenueSummary struct {
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	BookedCount      int64           `json:"booked_count"`
	BookedRevenue    decimal.Decimal `json:"booked_revenue"`
	CompletedCount   int64           `json:"completed_count"`
	CompletedRevenue decimal.Decimal `json:"completed_revenue"`
	AvgMoveValue     decimal.Decimal `json:"avg_move_value"`
}

// UpcomingMove is a booked quote in the near future
type UpcomingMove struct {
	QuoteID        uuid.UUID       `json:"quote_id"`
	QuoteNumber    string          `json:"quote_number"`
	CustomerName   string          `json:"customer_name"`
	MoveDate       time.Time       `json:"move_date"`
	MoveSize       string          `json:"move_size"`
	TruckCount     int             `json:"truck_count"`
	AssignedTrucks int64           `json:"assigned_trucks"`
	TotalPrice     decimal.Decimal `json:"total_price"`
}

// NeedsTrucks reports whether fewer trucks are assigned than the crew needs
func (m UpcomingMove) NeedsTrucks() bool {
	return m.AssignedTrucks < int64(m.TruckCount)
}

// FleetUtilization describes truck and crew usage on one day
type FleetUtilization struct {
	Date                time.Time       `json:"date"`
	ActiveTrucks        int64           `json:"active_trucks"`
	AssignedTrucks      int64           `json:"assigned_trucks"`
	MaintenanceTrucks   int64           `json:"maintenance_trucks"`
	ActiveEmployees     int64           `json:"active_employees"`
	ScheduledEmployees  int64           `json:"scheduled_employees"`
	TruckUtilization    decimal.Decimal `json:"truck_utilization"`    // percentage
	EmployeeUtilization decimal.Decimal `json:"employee_utilization"` // percentage
}

// ComputeRates fills the utilization percentages from the counts
func (f *FleetUtilization) ComputeRates() {
	f.TruckUtilization = Percentage(f.AssignedTrucks, f.ActiveTrucks)
	f.EmployeeUtilization = Percentage(f.ScheduledEmployees, f.ActiveEmployees)
}

// ReferrerRanking is one row of the top referrers table
type ReferrerRanking struct {
	Rank           int             `json:"rank"`
	ReferrerID     uuid.UUID       `json:"referrer_id"`
	Name           string          `json:"name"`
	ReferralCode   string          `json:"referral_code"`
	QuotesReferred int64           `json:"quotes_referred"`
	QuotesBooked   int64           `json:"quotes_booked"`
	Revenue        decimal.Decimal `json:"revenue"`
}

// ReferralStats are one referrer's numbers. Revenue counts completed moves only.
type ReferralStats struct {
	ReferrerID       uuid.UUID       `json:"referrer_id"`
	QuotesReferred   int64           `json:"quotes_referred"`
	QuotesBooked     int64           `json:"quotes_booked"`
	QuotesCompleted  int64           `json:"quotes_completed"`
	CompletedRevenue decimal.Decimal `json:"completed_revenue"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	CommissionOwed   decimal.Decimal `json:"commission_owed"`
	ConversionRate   decimal.Decimal `json:"conversion_rate"` // booked or completed / referred, percentage
}

// ApplyCommission computes commission owed and conversion from the counts
func (s *ReferralStats) ApplyCommission(rate decimal.Decimal) {
	s.CommissionRate = rate
	s.CommissionOwed = s.CompletedRevenue.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
	s.ConversionRate = Percentage(s.QuotesBooked+s.QuotesCompleted, s.QuotesReferred)
}

// Percentage returns part/total*100 rounded to 2 dp, 0 when total is 0
func Percentage(part, total int64) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).Round(2)
}

// DashboardFilter defines the period and scope of dashboard queries
type DashboardFilter struct {
	CompanyID  uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	ReferrerID *uuid.UUID
	TopN       int
}

// DashboardRepository defines the aggregate queries behind the dashboards
type DashboardRepository interface {
	// GetRevenueSummary sums booked and completed quotes whose move date is in the period
	GetRevenueSummary(ctx context.Context, filter DashboardFilter) (*RevenueSummary, error)

	// GetUpcomingMoves lists booked quotes moving between from and to, soonest first
	GetUpcomingMoves(ctx context.Context, companyID uuid.UUID, from, to time.Time, limit int) ([]UpcomingMove, error)

	GetFleetUtilization(ctx context.Context, companyID uuid.UUID, day time.Time) (*FleetUtilization, error)

	// GetReferrerRanking ranks referrers by booked and completed revenue
	GetReferrerRanking(ctx context.Context, filter DashboardFilter) ([]ReferrerRanking, error)

	// GetReferralStats counts quotes for filter.ReferrerID. Commission is left to the caller.
	GetReferralStats(ctx context.Context, filter DashboardFilter) (*ReferralStats, error)
}
