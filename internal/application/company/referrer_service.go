package company

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/report"
	"github.com/syncworks/backend/internal/domain/shared"
)

const dateLayout = "2006-01-02"

// ReferrerService manages referral partners
type ReferrerService struct {
	referrerRepo  company.ReferrerRepository
	dashboardRepo report.DashboardRepository
	now           func() time.Time
}

// NewReferrerService creates a new ReferrerService
func NewReferrerService(referrerRepo company.ReferrerRepository, dashboardRepo report.DashboardRepository) *ReferrerService {
	return &ReferrerService{referrerRepo: referrerRepo, dashboardRepo: dashboardRepo, now: time.Now}
}

// Create adds a referrer. Referral codes are unique within a company.
func (s *ReferrerService) Create(ctx context.Context, companyID uuid.UUID, req CreateReferrerRequest) (*ReferrerResponse, error) {
	ref, err := company.NewReferrer(companyID, req.Name, req.ReferralCode, req.CommissionRate)
	if err != nil {
		return nil, err
	}
	exists, err := s.referrerRepo.ExistsByCode(ctx, companyID, ref.ReferralCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Referral code is already in use")
	}
	if err := ref.Update(ref.Name, req.Email, req.Phone, ref.CommissionRate); err != nil {
		return nil, err
	}
	if err := s.referrerRepo.Save(ctx, ref); err != nil {
		return nil, err
	}
	resp := ToReferrerResponse(ref)
	return &resp, nil
}

// GetByID returns a referrer
func (s *ReferrerService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*ReferrerResponse, error) {
	ref, err := s.referrerRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToReferrerResponse(ref)
	return &resp, nil
}

// List returns a page of referrers
func (s *ReferrerService) List(ctx context.Context, companyID uuid.UUID, filter ReferrerListFilter) ([]ReferrerResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
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
		domainFilter.Filters["status"] = filter.Status
	}

	refs, err := s.referrerRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.referrerRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	out := make([]ReferrerResponse, len(refs))
	for i := range refs {
		out[i] = ToReferrerResponse(&refs[i])
	}
	return out, total, nil
}

// Update changes contact details or commission
func (s *ReferrerService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateReferrerRequest) (*ReferrerResponse, error) {
	return s.update(ctx, companyID, id, func(ref *company.Referrer) error {
		name, email, phone, rate := ref.Name, ref.Email, ref.Phone, ref.CommissionRate
		if req.Name != nil {
			name = *req.Name
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.CommissionRate != nil {
			rate = *req.CommissionRate
		}
		return ref.Update(name, email, phone, rate)
	})
}

// Activate accepts the referral code again
func (s *ReferrerService) Activate(ctx context.Context, companyID, id uuid.UUID) (*ReferrerResponse, error) {
	return s.update(ctx, companyID, id, (*company.Referrer).Activate)
}

// Deactivate stops accepting the referral code. Quotes already linked keep the link.
func (s *ReferrerService) Deactivate(ctx context.Context, companyID, id uuid.UUID) (*ReferrerResponse, error) {
	return s.update(ctx, companyID, id, (*company.Referrer).Deactivate)
}

// Delete removes a referrer
func (s *ReferrerService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.referrerRepo.DeleteForCompany(ctx, companyID, id)
}

// Stats returns quotes referred, booked and completed, completed revenue
// and commission owed for a period. The default period is the current
// calendar year to date.
func (s *ReferrerService) Stats(ctx context.Context, companyID, id uuid.UUID, req ReferralStatsRequest) (*ReferralStatsResponse, error) {
	ref, err := s.referrerRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	from := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	to := shared.TruncateDay(now)
	if req.From != "" {
		if from, err = time.Parse(dateLayout, req.From); err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "from must be a date in YYYY-MM-DD format")
		}
	}
	if req.To != "" {
		if to, err = time.Parse(dateLayout, req.To); err != nil {
			return nil, shared.NewDomainError("INVALID_DATE", "to must be a date in YYYY-MM-DD format")
		}
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "to must not be before from")
	}

	stats, err := s.dashboardRepo.GetReferralStats(ctx, report.DashboardFilter{
		CompanyID:  companyID,
		StartDate:  from,
		EndDate:    to,
		ReferrerID: &ref.ID,
	})
	if err != nil {
		return nil, err
	}
	stats.ReferrerID = ref.ID
	stats.ApplyCommission(ref.CommissionRate)

	return &ReferralStatsResponse{
		Referrer: ToReferrerResponse(ref),
		From:     from.Format(dateLayout),
		To:       to.Format(dateLayout),
		Stats:    *stats,
	}, nil
}

func (s *ReferrerService) update(ctx context.Context, companyID, id uuid.UUID, change func(*company.Referrer) error) (*ReferrerResponse, error) {
	ref, err := s.referrerRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := change(ref); err != nil {
		return nil, err
	}
	if err := s.referrerRepo.Save(ctx, ref); err != nil {
		return nil, err
	}
	resp := ToReferrerResponse(ref)
	return &resp, nil
}
