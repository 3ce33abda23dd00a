package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	// DefaultQuoteTTL is how long an unbooked quote stays open
	DefaultQuoteTTL = 30 * 24 * time.Hour
	expireBatchSize = 200

	maxNumberAttempts = 3
)

// QuoteService runs the quote lifecycle
type QuoteService struct {
	quoteRepo    quote.QuoteRepository
	companyRepo  company.CompanyRepository
	referrerRepo company.ReferrerRepository
	pricer       Pricer

	publisher   shared.EventPublisher
	storage     ObjectStorage
	renderer    DocumentRenderer
	trucks      TruckScheduler
	booking     BookingScope
	logger      *zap.Logger
	quoteTTL    time.Duration
	currency    string
	attachments AttachmentConfig
	now         func() time.Time
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	quoteRepo quote.QuoteRepository,
	companyRepo company.CompanyRepository,
	referrerRepo company.ReferrerRepository,
	pricer Pricer,
	opts ...Option,
) *QuoteService {
	s := &QuoteService{
		quoteRepo:    quoteRepo,
		companyRepo:  companyRepo,
		referrerRepo: referrerRepo,
		pricer:       pricer,
		logger:       zap.NewNop(),
		quoteTTL:     DefaultQuoteTTL,
		currency:     "USD",
		attachments:  DefaultAttachmentConfig(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.booking == nil {
		s.booking = directBookingScope{quotes: s.quoteRepo, trucks: s.trucks}
	}
	return s
}

// Submit takes a quote from the public form. The company is addressed by
// its code. An unknown or inactive referral code does not block the quote.
func (s *QuoteService) Submit(ctx context.Context, companyCode string, req SubmitQuoteRequest) (*SubmitQuoteResponse, error) {
	co, err := s.companyRepo.FindByCode(ctx, companyCode)
	if err != nil {
		return nil, err
	}
	if !co.IsActive() {
		return nil, shared.NewDomainError("COMPANY_SUSPENDED", "This company is not accepting quotes")
	}

	moveDate, err := parseDate("move_date", req.MoveDate)
	if err != nil {
		return nil, err
	}
	if moveDate.Before(s.today(co)) {
		return nil, shared.NewDomainError("MOVE_DATE_PASSED", "Move date cannot be in the past")
	}

	q, err := quote.NewQuote(
		co.ID,
		req.Customer.toDomain(),
		req.Origin.toDomain(),
		req.Destination.toDomain(),
		moveDate,
		quote.MoveSize(req.MoveSize),
		req.Crew.toDomain(),
	)
	if err != nil {
		return nil, err
	}
	if req.Notes != "" {
		q.SetNotes(req.Notes)
	}
	if req.ReferralCode != "" {
		s.attachReferrer(ctx, q, req.ReferralCode)
	}

	rates := quote.Rates{HourlyRate: co.DefaultHourlyRate, TruckFee: co.DefaultTruckFee}
	if err := s.price(ctx, q, rates); err != nil {
		return nil, err
	}

	if err := s.saveNew(ctx, q); err != nil {
		return nil, err
	}

	s.logger.Info("quote submitted",
		zap.String("company_id", co.ID.String()),
		zap.String("quote_number", q.QuoteNumber),
		zap.String("total_price", q.TotalPrice.StringFixed(2)),
	)

	resp := toSubmitResponse(q)
	return &resp, nil
}

func (s *QuoteService) attachReferrer(ctx context.Context, q *quote.Quote, code string) {
	code = company.NormalizeReferralCode(code)
	ref, err := s.referrerRepo.FindByCode(ctx, q.CompanyID, code)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		s.logger.Info("unknown referral code ignored", zap.String("code", code))
	case err != nil:
		s.logger.Warn("referral lookup failed", zap.String("code", code), zap.Error(err))
	case !ref.IsActive():
		s.logger.Info("inactive referral code ignored", zap.String("code", code))
	default:
		q.SetReferrer(ref.ID, ref.ReferralCode)
	}
}

// price runs the season rules for the move date and applies the result
func (s *QuoteService) price(ctx context.Context, q *quote.Quote, rates quote.Rates) error {
	base := quote.BasePrice(q.Crew, rates)
	adj, err := s.pricer.Calculate(ctx, q.CompanyID, base, q.MoveDate)
	if err != nil {
		return fmt.Errorf("price quote: %w", err)
	}
	names := make([]string, len(adj.Rules))
	for i, r := range adj.Rules {
		names[i] = r.Name
	}
	return q.ApplyPricing(rates, adj.Adjustment, names)
}

// GetByID returns one quote
func (s *QuoteService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*QuoteResponse, error) {
	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToQuoteResponse(q)
	return &resp, nil
}

// GetByIDForReferrer returns a quote only if referrerID sent it
func (s *QuoteService) GetByIDForReferrer(ctx context.Context, companyID, referrerID, id uuid.UUID) (*QuoteResponse, error) {
	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if q.ReferrerID == nil || *q.ReferrerID != referrerID {
		return nil, shared.ErrNotFound
	}
	resp := ToQuoteResponse(q)
	return &resp, nil
}

// GetByNumber looks a quote up by its customer-facing number
func (s *QuoteService) GetByNumber(ctx context.Context, companyID uuid.UUID, number string) (*QuoteResponse, error) {
	q, err := s.quoteRepo.FindByNumber(ctx, companyID, number)
	if err != nil {
		return nil, err
	}
	resp := ToQuoteResponse(q)
	return &resp, nil
}

// List returns a page of quotes
func (s *QuoteService) List(ctx context.Context, companyID uuid.UUID, filter QuoteListFilter) ([]QuoteListResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		domainFilter.Filters[quote.FilterStatus] = filter.Status
	}
	if filter.ReferrerID != nil {
		domainFilter.Filters[quote.FilterReferrerID] = *filter.ReferrerID
	}
	if filter.From != "" {
		from, err := parseDate("from", filter.From)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters[quote.FilterMoveDateFrom] = from
	}
	if filter.To != "" {
		to, err := parseDate("to", filter.To)
		if err != nil {
			return nil, 0, err
		}
		domainFilter.Filters[quote.FilterMoveDateTo] = to
	}

	quotes, err := s.quoteRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.quoteRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	out := make([]QuoteListResponse, len(quotes))
	for i := range quotes {
		out[i] = ToQuoteListResponse(&quotes[i])
	}
	return out, total, nil
}

// Update replaces the move details and reprices at the quote's current rates
func (s *QuoteService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateQuoteRequest) (*QuoteResponse, error) {
	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	moveDate, err := parseDate("move_date", req.MoveDate)
	if err != nil {
		return nil, err
	}

	if err := q.UpdateDetails(
		req.Customer.toDomain(),
		req.Origin.toDomain(),
		req.Destination.toDomain(),
		moveDate,
		quote.MoveSize(req.MoveSize),
		req.Crew.toDomain(),
		req.Notes,
	); err != nil {
		return nil, err
	}
	if err := s.price(ctx, q, q.Rates); err != nil {
		return nil, err
	}

	if err := s.save(ctx, q); err != nil {
		return nil, err
	}
	resp := ToQuoteResponse(q)
	return &resp, nil
}

// Reprice reruns the season rules, optionally with new rates. Rates left
// out of the request come from the company defaults.
func (s *QuoteService) Reprice(ctx context.Context, companyID, id uuid.UUID, req RepriceRequest) (*QuoteResponse, error) {
	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	co, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	rates := quote.Rates{HourlyRate: co.DefaultHourlyRate, TruckFee: co.DefaultTruckFee}
	if req.HourlyRate != nil {
		rates.HourlyRate = *req.HourlyRate
	}
	if req.TruckFee != nil {
		rates.TruckFee = *req.TruckFee
	}
	if err := s.price(ctx, q, rates); err != nil {
		return nil, err
	}

	if err := s.save(ctx, q); err != nil {
		return nil, err
	}
	resp := ToQuoteResponse(q)
	return &resp, nil
}

// MarkQuoted records that the price was sent to the customer
func (s *QuoteService) MarkQuoted(ctx context.Context, companyID, id uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, id, (*quote.Quote).MarkQuoted)
}

// Book confirms the move and reserves any trucks named in the request
func (s *QuoteService) Book(ctx context.Context, companyID, id uuid.UUID, req BookQuoteRequest) (*QuoteResponse, error) {
	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	co, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if len(req.TruckIDs) > 0 && s.trucks == nil {
		return nil, shared.NewDomainError("SCHEDULING_UNAVAILABLE", "Truck scheduling is not available")
	}

	if err := q.Book(s.today(co)); err != nil {
		return nil, err
	}

	// events wait for the commit so a rolled back booking announces nothing
	events := &shared.EventCollector{}
	err = s.booking.Execute(ctx, events, func(repos BookingRepositories) error {
		if len(req.TruckIDs) > 0 {
			if err := repos.Trucks().AssignTrucks(ctx, companyID, q.ID, q.MoveDate, req.TruckIDs); err != nil {
				return err
			}
		}
		if err := repos.QuoteRepo().Save(ctx, q); err != nil {
			return err
		}
		return shared.PublishAndClear(ctx, events, q)
	})
	if err != nil {
		return nil, err
	}
	if err := events.Flush(ctx, s.publisher); err != nil {
		return nil, err
	}
	resp := ToQuoteResponse(q)
	return &resp, nil
}

// Complete marks a booked move as done
func (s *QuoteService) Complete(ctx context.Context, companyID, id uuid.UUID) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, id, (*quote.Quote).Complete)
}

// Cancel cancels an open or booked quote
func (s *QuoteService) Cancel(ctx context.Context, companyID, id uuid.UUID, req CancelQuoteRequest) (*QuoteResponse, error) {
	return s.transition(ctx, companyID, id, func(q *quote.Quote) error {
		return q.Cancel(req.Reason)
	})
}

func (s *QuoteService) transition(ctx context.Context, companyID, id uuid.UUID, change func(*quote.Quote) error) (*QuoteResponse, error) {
	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := change(q); err != nil {
		return nil, err
	}
	if err := s.save(ctx, q); err != nil {
		return nil, err
	}
	resp := ToQuoteResponse(q)
	return &resp, nil
}

// Delete removes a quote nobody has acted on yet
func (s *QuoteService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !q.CanDelete() {
		return shared.NewDomainError("CANNOT_DELETE", "Only pending quotes can be deleted")
	}
	if err := s.quoteRepo.DeleteForCompany(ctx, companyID, id); err != nil {
		return err
	}

	if s.storage != nil {
		for _, key := range q.Attachments {
			if err := s.storage.DeleteObject(ctx, key); err != nil && !errors.Is(err, ErrStorageDisabled) {
				s.logger.Warn("failed to delete quote attachment",
					zap.String("quote_id", id.String()),
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}

// StatusSummary counts a company's quotes by status
func (s *QuoteService) StatusSummary(ctx context.Context, companyID uuid.UUID) (*StatusSummaryResponse, error) {
	counts, err := s.quoteRepo.CountByStatus(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := &StatusSummaryResponse{Counts: make(map[string]int64, len(quote.AllStatuses))}
	for _, st := range quote.AllStatuses {
		n := counts[st]
		resp.Counts[string(st)] = n
		resp.Total += n
		if st.IsOpen() {
			resp.Open += n
		}
	}
	return resp, nil
}

// ExpireStale closes open quotes older than the TTL across all companies.
// It works in batches until no stale quotes remain or ctx is done.
func (s *QuoteService) ExpireStale(ctx context.Context) (*ExpireResult, error) {
	cutoff := s.now().Add(-s.quoteTTL)
	result := &ExpireResult{}

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		stale, err := s.quoteRepo.FindStale(ctx, cutoff, expireBatchSize)
		if err != nil {
			return result, err
		}
		if len(stale) == 0 {
			break
		}
		result.Scanned += len(stale)

		progressed := false
		for i := range stale {
			q := &stale[i]
			if err := q.Expire(); err != nil {
				result.Failed++
				continue
			}
			if err := s.save(ctx, q); err != nil {
				result.Failed++
				s.logger.Warn("failed to expire quote", zap.String("quote_id", q.ID.String()), zap.Error(err))
				continue
			}
			result.Expired++
			progressed = true
		}
		if !progressed || len(stale) < expireBatchSize {
			break
		}
	}

	if result.Expired > 0 || result.Failed > 0 {
		s.logger.Info("stale quotes expired",
			zap.Int("expired", result.Expired),
			zap.Int("failed", result.Failed),
		)
	}
	return result, nil
}

// ExpireStaleJob adapts ExpireStale to the scheduler's job signature
func (s *QuoteService) ExpireStaleJob(ctx context.Context) error {
	_, err := s.ExpireStale(ctx)
	return err
}

func (s *QuoteService) save(ctx context.Context, q *quote.Quote) error {
	if err := s.quoteRepo.Save(ctx, q); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, q)
}

// saveNew stores a freshly submitted quote, drawing a new number when the
// generated one collides with an existing quote
func (s *QuoteService) saveNew(ctx context.Context, q *quote.Quote) error {
	var err error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		err = s.quoteRepo.Save(ctx, q)
		if !errors.Is(err, quote.ErrQuoteNumberTaken) {
			break
		}
		s.logger.Warn("quote number collision, renumbering",
			zap.String("quote_number", q.QuoteNumber),
			zap.Int("attempt", attempt),
		)
		q.Renumber()
	}
	if err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, q)
}

// today is the current calendar day in the company's time zone
func (s *QuoteService) today(co *company.Company) time.Time {
	return shared.TruncateDay(s.now().In(co.Location()))
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", field+" must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

