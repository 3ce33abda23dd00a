package company

import (
	"context"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/shared"
)

// CompanyService manages company profiles and default rates
type CompanyService struct {
	companyRepo company.CompanyRepository
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo company.CompanyRepository) *CompanyService {
	return &CompanyService{companyRepo: companyRepo}
}

// Create onboards a company
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	co, err := company.NewCompany(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	exists, err := s.companyRepo.ExistsByCode(ctx, co.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Company with this code already exists")
	}
	if err := co.UpdateProfile(co.Name, req.Email, req.Phone, req.Address, req.Timezone); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, co); err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(co)
	return &resp, nil
}

// Get returns a company
func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	co, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(co)
	return &resp, nil
}

// GetPublic returns the public profile the quote form shows
func (s *CompanyService) GetPublic(ctx context.Context, code string) (*PublicCompanyResponse, error) {
	co, err := s.companyRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return &PublicCompanyResponse{
		Code:         co.Code,
		Name:         co.Name,
		ContactEmail: co.ContactEmail,
		ContactPhone: co.ContactPhone,
		Timezone:     co.Timezone,
		AcceptsQuote: co.IsActive(),
	}, nil
}

// UpdateProfile changes contact details and timezone
func (s *CompanyService) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	return s.update(ctx, id, func(co *company.Company) error {
		return co.UpdateProfile(req.Name, req.Email, req.Phone, req.Address, req.Timezone)
	})
}

// UpdateRates changes the rates new quotes are priced with. Existing
// quotes keep the rates they were priced with.
func (s *CompanyService) UpdateRates(ctx context.Context, id uuid.UUID, req UpdateRatesRequest) (*CompanyResponse, error) {
	return s.update(ctx, id, func(co *company.Company) error {
		return co.SetDefaultRates(req.HourlyRate, req.TruckFee)
	})
}

// Suspend stops a company from taking quotes
func (s *CompanyService) Suspend(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	return s.update(ctx, id, (*company.Company).Suspend)
}

// Reactivate lifts a suspension
func (s *CompanyService) Reactivate(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	return s.update(ctx, id, (*company.Company).Reactivate)
}

func (s *CompanyService) update(ctx context.Context, id uuid.UUID, change func(*company.Company) error) (*CompanyResponse, error) {
	co, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(co); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, co); err != nil {
		return nil, err
	}
	resp := ToCompanyResponse(co)
	return &resp, nil
}
