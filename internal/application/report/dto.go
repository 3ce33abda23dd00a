package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/report"
)

// DashboardRequest selects the reporting period. Dates are YYYY-MM-DD;
// both empty means the current month.
type DashboardRequest struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// UpcomingMoveResponse is an upcoming booked move on the admin dashboard
type UpcomingMoveResponse struct {
	report.UpcomingMove
	NeedsTrucks bool `json:"needs_trucks"`
}

// AdminDashboardResponse is the admin landing page
type AdminDashboardResponse struct {
	From          time.Time                `json:"from"`
	To            time.Time                `json:"to"`
	Today         time.Time                `json:"today"`
	QuoteCounts   map[string]int64         `json:"quote_counts"`
	Revenue       *report.RevenueSummary   `json:"revenue"`
	UpcomingMoves []UpcomingMoveResponse   `json:"upcoming_moves"`
	Fleet         *report.FleetUtilization `json:"fleet"`
	TopReferrers  []report.ReferrerRanking `json:"top_referrers"`
	GeneratedAt   time.Time                `json:"generated_at"`
}

// RecentQuote is a quote row on the referrer dashboard
type RecentQuote struct {
	ID           uuid.UUID       `json:"id"`
	QuoteNumber  string          `json:"quote_number"`
	CustomerName string          `json:"customer_name"`
	MoveDate     time.Time       `json:"move_date"`
	MoveSize     string          `json:"move_size"`
	Status       string          `json:"status"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ReferrerDashboardResponse is the landing page of a referrer user
type ReferrerDashboardResponse struct {
	ReferrerID   uuid.UUID            `json:"referrer_id"`
	Name         string               `json:"name"`
	ReferralCode string               `json:"referral_code"`
	From         time.Time            `json:"from"`
	To           time.Time            `json:"to"`
	Stats        report.ReferralStats `json:"stats"`
	RecentQuotes []RecentQuote        `json:"recent_quotes"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

func toRecentQuote(q *quote.Quote) RecentQuote {
	return RecentQuote{
		ID:           q.ID,
		QuoteNumber:  q.QuoteNumber,
		CustomerName: q.Customer.Name,
		MoveDate:     q.MoveDate,
		MoveSize:     string(q.MoveSize),
		Status:       string(q.Status),
		TotalPrice:   q.TotalPrice,
		CreatedAt:    q.CreatedAt,
	}
}
