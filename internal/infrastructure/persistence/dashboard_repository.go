package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/report"
	"github.com/syncworks/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// revenueStatuses are the quote statuses that count as revenue
var revenueStatuses = []quote.Status{quote.StatusBooked, quote.StatusCompleted}

// GormDashboardRepository implements DashboardRepository using GORM
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetRevenueSummary returns booked and completed totals for the period
func (r *GormDashboardRepository) GetRevenueSummary(ctx context.Context, filter report.DashboardFilter) (*report.RevenueSummary, error) {
	type summaryResult struct {
		BookedCount      int64
		BookedRevenue    decimal.Decimal
		CompletedCount   int64
		CompletedRevenue decimal.Decimal
	}

	var result summaryResult
	err := r.db.WithContext(ctx).Table("quotes q").
		Select(`
			COALESCE(SUM(CASE WHEN q.status = ? THEN 1 ELSE 0 END), 0) as booked_count,
			COALESCE(SUM(CASE WHEN q.status = ? THEN q.total_price ELSE 0 END), 0) as booked_revenue,
			COALESCE(SUM(CASE WHEN q.status = ? THEN 1 ELSE 0 END), 0) as completed_count,
			COALESCE(SUM(CASE WHEN q.status = ? THEN q.total_price ELSE 0 END), 0) as completed_revenue
		`, quote.StatusBooked, quote.StatusBooked, quote.StatusCompleted, quote.StatusCompleted).
		Where("q.company_id = ?", filter.CompanyID).
		Where("q.move_date BETWEEN ? AND ?", shared.TruncateDay(filter.StartDate), shared.TruncateDay(filter.EndDate)).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	var avg decimal.Decimal
	if total := result.BookedCount + result.CompletedCount; total > 0 {
		avg = result.BookedRevenue.Add(result.CompletedRevenue).
			Div(decimal.NewFromInt(total)).Round(2)
	}

	return &report.RevenueSummary{
		PeriodStart:      filter.StartDate,
		PeriodEnd:        filter.EndDate,
		BookedCount:      result.BookedCount,
		BookedRevenue:    result.BookedRevenue,
		CompletedCount:   result.CompletedCount,
		CompletedRevenue: result.CompletedRevenue,
		AvgMoveValue:     avg,
	}, nil
}

// GetUpcomingMoves returns booked quotes moving in [from, to] with their truck counts
func (r *GormDashboardRepository) GetUpcomingMoves(ctx context.Context, companyID uuid.UUID, from, to time.Time, limit int) ([]report.UpcomingMove, error) {
	type moveResult struct {
		ID             uuid.UUID
		QuoteNumber    string
		CustomerName   string
		MoveDate       time.Time
		MoveSize       string
		TruckCount     int
		AssignedTrucks int64
		TotalPrice     decimal.Decimal
	}

	if limit <= 0 {
		limit = 20
	}

	var results []moveResult
	err := r.db.WithContext(ctx).Table("quotes q").
		Select(`
			q.id,
			q.quote_number,
			q.customer_name,
			q.move_date,
			q.move_size,
			q.truck_count,
			COUNT(ta.id) as assigned_trucks,
			q.total_price
		`).
		Joins("LEFT JOIN truck_assignments ta ON ta.quote_id = q.id").
		Where("q.company_id = ?", companyID).
		Where("q.status = ?", quote.StatusBooked).
		Where("q.move_date BETWEEN ? AND ?", shared.TruncateDay(from), shared.TruncateDay(to)).
		Group("q.id, q.quote_number, q.customer_name, q.move_date, q.move_size, q.truck_count, q.total_price").
		Order("q.move_date ASC, q.quote_number ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	moves := make([]report.UpcomingMove, len(results))
	for i, m := range results {
		moves[i] = report.UpcomingMove{
			QuoteID:        m.ID,
			QuoteNumber:    m.QuoteNumber,
			CustomerName:   m.CustomerName,
			MoveDate:       m.MoveDate,
			MoveSize:       m.MoveSize,
			TruckCount:     m.TruckCount,
			AssignedTrucks: m.AssignedTrucks,
			TotalPrice:     m.TotalPrice,
		}
	}
	return moves, nil
}

// GetFleetUtilization counts trucks and employees in use on a day
func (r *GormDashboardRepository) GetFleetUtilization(ctx context.Context, companyID uuid.UUID, day time.Time) (*report.FleetUtilization, error) {
	day = shared.TruncateDay(day)
	db := r.db.WithContext(ctx)
	util := &report.FleetUtilization{Date: day}

	type truckResult struct {
		Active      int64
		Maintenance int64
	}
	var trucks truckResult
	if err := db.Table("trucks").
		Select(`
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as active,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as maintenance
		`, fleet.TruckStatusActive, fleet.TruckStatusMaintenance).
		Where("company_id = ?", companyID).
		Scan(&trucks).Error; err != nil {
		return nil, err
	}
	util.ActiveTrucks = trucks.Active
	util.MaintenanceTrucks = trucks.Maintenance

	if err := db.Table("truck_assignments").
		Where("company_id = ? AND date = ?", companyID, day).
		Distinct("truck_id").
		Count(&util.AssignedTrucks).Error; err != nil {
		return nil, err
	}

	if err := db.Table("employees").
		Where("company_id = ? AND status = ?", companyID, fleet.EmployeeStatusActive).
		Count(&util.ActiveEmployees).Error; err != nil {
		return nil, err
	}

	if err := db.Table("shifts").
		Where("company_id = ? AND date = ?", companyID, day).
		Distinct("employee_id").
		Count(&util.ScheduledEmployees).Error; err != nil {
		return nil, err
	}

	util.ComputeRates()
	return util, nil
}

// GetReferrerRanking returns the top N referrers by revenue from quotes created in the period
func (r *GormDashboardRepository) GetReferrerRanking(ctx context.Context, filter report.DashboardFilter) ([]report.ReferrerRanking, error) {
	type rankingResult struct {
		ReferrerID     uuid.UUID
		Name           string
		ReferralCode   string
		QuotesReferred int64
		QuotesBooked   int64
		Revenue        decimal.Decimal
	}

	topN := filter.TopN
	if topN <= 0 {
		topN = 5
	}

	var results []rankingResult
	err := r.db.WithContext(ctx).Table("referrers rf").
		Select(`
			rf.id as referrer_id,
			rf.name,
			rf.referral_code,
			COUNT(q.id) as quotes_referred,
			COALESCE(SUM(CASE WHEN q.status IN ? THEN 1 ELSE 0 END), 0) as quotes_booked,
			COALESCE(SUM(CASE WHEN q.status IN ? THEN q.total_price ELSE 0 END), 0) as revenue
		`, revenueStatuses, revenueStatuses).
		Joins("JOIN quotes q ON q.referrer_id = rf.id AND q.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("rf.company_id = ?", filter.CompanyID).
		Group("rf.id, rf.name, rf.referral_code").
		Order("revenue DESC, quotes_referred DESC").
		Limit(topN).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	rankings := make([]report.ReferrerRanking, len(results))
	for i, res := range results {
		rankings[i] = report.ReferrerRanking{
			Rank:           i + 1,
			ReferrerID:     res.ReferrerID,
			Name:           res.Name,
			ReferralCode:   res.ReferralCode,
			QuotesReferred: res.QuotesReferred,
			QuotesBooked:   res.QuotesBooked,
			Revenue:        res.Revenue,
		}
	}
	return rankings, nil
}

// GetReferralStats counts the quotes of filter.ReferrerID. A zero period covers all time.
func (r *GormDashboardRepository) GetReferralStats(ctx context.Context, filter report.DashboardFilter) (*report.ReferralStats, error) {
	if filter.ReferrerID == nil {
		return nil, shared.NewDomainError("REFERRER_REQUIRED", "Referrer ID is required")
	}

	type statsResult struct {
		QuotesReferred   int64
		QuotesBooked     int64
		QuotesCompleted  int64
		CompletedRevenue decimal.Decimal
	}

	query := r.db.WithContext(ctx).Table("quotes q").
		Select(`
			COUNT(q.id) as quotes_referred,
			COALESCE(SUM(CASE WHEN q.status = ? THEN 1 ELSE 0 END), 0) as quotes_booked,
			COALESCE(SUM(CASE WHEN q.status = ? THEN 1 ELSE 0 END), 0) as quotes_completed,
			COALESCE(SUM(CASE WHEN q.status = ? THEN q.total_price ELSE 0 END), 0) as completed_revenue
		`, quote.StatusBooked, quote.StatusCompleted, quote.StatusCompleted).
		Where("q.company_id = ?", filter.CompanyID).
		Where("q.referrer_id = ?", *filter.ReferrerID)
	if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() {
		query = query.Where("q.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate)
	}

	var result statsResult
	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}

	return &report.ReferralStats{
		ReferrerID:       *filter.ReferrerID,
		QuotesReferred:   result.QuotesReferred,
		QuotesBooked:     result.QuotesBooked,
		QuotesCompleted:  result.QuotesCompleted,
		CompletedRevenue: result.CompletedRevenue,
	}, nil
}

// Ensure GormDashboardRepository implements DashboardRepository
var _ report.DashboardRepository = (*GormDashboardRepository)(nil)
