package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/report"
	"github.com/syncworks/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	upcomingWindowDays  = 14
	upcomingMovesLimit  = 20
	topReferrersCount   = 5
	recentQuotesCount   = 10
	maxDashboardDays    = 366
	warmConcurrency     = 4
	defaultDashboardTTL = 5 * time.Minute
)

// DashboardCache stores computed dashboards per company. Implemented by the
// Redis and in-memory caches in infrastructure/cache.
type DashboardCache interface {
	Get(ctx context.Context, companyID uuid.UUID, key string, dest any) (bool, error)
	Set(ctx context.Context, companyID uuid.UUID, key string, value any, ttl time.Duration) error
	InvalidateCompany(ctx context.Context, companyID uuid.UUID) error
}

// DashboardService builds the admin and referrer dashboards
type DashboardService struct {
	dashboardRepo report.DashboardRepository
	quoteRepo     quote.QuoteRepository
	companyRepo   company.CompanyRepository
	referrerRepo  company.ReferrerRepository
	cache         DashboardCache
	ttl           time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewDashboardService creates a DashboardService. A nil cache disables caching.
func NewDashboardService(
	dashboardRepo report.DashboardRepository,
	quoteRepo quote.QuoteRepository,
	companyRepo company.CompanyRepository,
	referrerRepo company.ReferrerRepository,
	cache DashboardCache,
	ttl time.Duration,
	logger *zap.Logger,
) *DashboardService {
	if ttl <= 0 {
		ttl = defaultDashboardTTL
	}
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		quoteRepo:     quoteRepo,
		companyRepo:   companyRepo,
		referrerRepo:  referrerRepo,
		cache:         cache,
		ttl:           ttl,
		logger:        logger,
		now:           time.Now,
	}
}

// AdminDashboard returns quote counts, revenue for the period, the next two
// weeks of moves, today's fleet utilization and the top referrers.
func (s *DashboardService) AdminDashboard(ctx context.Context, companyID uuid.UUID, req DashboardRequest) (*AdminDashboardResponse, error) {
	co, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	today := s.today(co)
	from, to, err := resolvePeriod(req, today)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("admin:%s:%s:%s", today.Format(time.DateOnly), from.Format(time.DateOnly), to.Format(time.DateOnly))
	var cached AdminDashboardResponse
	if s.cacheGet(ctx, companyID, key, &cached) {
		return &cached, nil
	}

	resp := &AdminDashboardResponse{From: from, To: to, Today: today}
	filter := report.DashboardFilter{CompanyID: companyID, StartDate: from, EndDate: to, TopN: topReferrersCount}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.quoteRepo.CountByStatus(gctx, companyID)
		if err != nil {
			return fmt.Errorf("count quotes: %w", err)
		}
		resp.QuoteCounts = make(map[string]int64, len(quote.AllStatuses))
		for _, st := range quote.AllStatuses {
			resp.QuoteCounts[string(st)] = counts[st]
		}
		return nil
	})
	g.Go(func() error {
		revenue, err := s.dashboardRepo.GetRevenueSummary(gctx, filter)
		if err != nil {
			return fmt.Errorf("revenue summary: %w", err)
		}
		resp.Revenue = revenue
		return nil
	})
	g.Go(func() error {
		moves, err := s.dashboardRepo.GetUpcomingMoves(gctx, companyID, today, today.AddDate(0, 0, upcomingWindowDays-1), upcomingMovesLimit)
		if err != nil {
			return fmt.Errorf("upcoming moves: %w", err)
		}
		resp.UpcomingMoves = make([]UpcomingMoveResponse, len(moves))
		for i, m := range moves {
			resp.UpcomingMoves[i] = UpcomingMoveResponse{UpcomingMove: m, NeedsTrucks: m.NeedsTrucks()}
		}
		return nil
	})
	g.Go(func() error {
		fleet, err := s.dashboardRepo.GetFleetUtilization(gctx, companyID, today)
		if err != nil {
			return fmt.Errorf("fleet utilization: %w", err)
		}
		fleet.ComputeRates()
		resp.Fleet = fleet
		return nil
	})
	g.Go(func() error {
		ranking, err := s.dashboardRepo.GetReferrerRanking(gctx, filter)
		if err != nil {
			return fmt.Errorf("referrer ranking: %w", err)
		}
		resp.TopReferrers = ranking
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.GeneratedAt = s.now().UTC()
	s.cacheSet(ctx, companyID, key, resp)
	return resp, nil
}

// ReferrerDashboard returns a referrer's own numbers and latest quotes
func (s *DashboardService) ReferrerDashboard(ctx context.Context, companyID, referrerID uuid.UUID, req DashboardRequest) (*ReferrerDashboardResponse, error) {
	co, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	today := s.today(co)
	from, to, err := resolvePeriod(req, today)
	if err != nil {
		return nil, err
	}
	ref, err := s.referrerRepo.FindByIDForCompany(ctx, companyID, referrerID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("referrer:%s:%s:%s", referrerID, from.Format(time.DateOnly), to.Format(time.DateOnly))
	var cached ReferrerDashboardResponse
	if s.cacheGet(ctx, companyID, key, &cached) {
		return &cached, nil
	}

	resp := &ReferrerDashboardResponse{
		ReferrerID:   ref.ID,
		Name:         ref.Name,
		ReferralCode: ref.ReferralCode,
		From:         from,
		To:           to,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.dashboardRepo.GetReferralStats(gctx, report.DashboardFilter{
			CompanyID:  companyID,
			StartDate:  from,
			EndDate:    to,
			ReferrerID: &referrerID,
		})
		if err != nil {
			return fmt.Errorf("referral stats: %w", err)
		}
		stats.ApplyCommission(ref.CommissionRate)
		resp.Stats = *stats
		return nil
	})
	g.Go(func() error {
		filter := shared.DefaultFilter().With(quote.FilterReferrerID, referrerID)
		filter.PageSize = recentQuotesCount
		filter.OrderBy = "created_at"
		filter.OrderDir = "desc"
		quotes, err := s.quoteRepo.FindAllForCompany(gctx, companyID, filter)
		if err != nil {
			return fmt.Errorf("recent quotes: %w", err)
		}
		resp.RecentQuotes = make([]RecentQuote, len(quotes))
		for i := range quotes {
			resp.RecentQuotes[i] = toRecentQuote(&quotes[i])
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp.GeneratedAt = s.now().UTC()
	s.cacheSet(ctx, companyID, key, resp)
	return resp, nil
}

// Invalidate drops every cached dashboard of a company
func (s *DashboardService) Invalidate(ctx context.Context, companyID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateCompany(ctx, companyID)
}

// Warm precomputes the default admin dashboard of every active company.
// It runs as the warm_dashboard_cache scheduler job.
func (s *DashboardService) Warm(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	companies, err := s.companyRepo.FindAll(ctx, shared.DefaultFilter().With("status", string(company.CompanyStatusActive)))
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmConcurrency)
	for i := range companies {
		companyID := companies[i].ID
		g.Go(func() error {
			if _, err := s.AdminDashboard(gctx, companyID, DashboardRequest{}); err != nil {
				// one broken company must not stop the others
				s.logger.Warn("Failed to warm dashboard",
					zap.String("company_id", companyID.String()),
					zap.Error(err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	s.logger.Debug("Dashboard cache warmed", zap.Int("companies", len(companies)))
	return nil
}

func (s *DashboardService) today(co *company.Company) time.Time {
	return shared.TruncateDay(s.now().In(co.Location()))
}

func (s *DashboardService) cacheGet(ctx context.Context, companyID uuid.UUID, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, companyID, key, dest)
	if err != nil {
		s.logger.Warn("Dashboard cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return hit
}

func (s *DashboardService) cacheSet(ctx context.Context, companyID uuid.UUID, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, companyID, key, value, s.ttl); err != nil {
		s.logger.Warn("Dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// resolvePeriod parses from/to. An empty request means the month containing
// today; a single missing bound is filled from the other's month.
func resolvePeriod(req DashboardRequest, today time.Time) (time.Time, time.Time, error) {
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	from, to := monthStart, monthStart.AddDate(0, 1, -1)

	if req.From != "" {
		d, err := time.Parse(time.DateOnly, req.From)
		if err != nil {
			return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_DATE", "from must be YYYY-MM-DD")
		}
		from = d
		if req.To == "" {
			to = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
		}
	}
	if req.To != "" {
		d, err := time.Parse(time.DateOnly, req.To)
		if err != nil {
			return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_DATE", "to must be YYYY-MM-DD")
		}
		to = d
		if req.From == "" {
			from = time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_DATE_RANGE", "from must not be after to")
	}
	if to.Sub(from) > maxDashboardDays*24*time.Hour {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_DATE_RANGE", "Dashboard period cannot exceed one year")
	}
	return from, to, nil
}
