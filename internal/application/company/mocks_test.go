package company

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/report"
	"github.com/syncworks/backend/internal/domain/shared"
)

type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindByCode(ctx context.Context, code string) (*company.Company, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Company), args.Error(1)
}

func (m *MockCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]company.Company, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	return m.Called(ctx, c).Error(0)
}

type MockReferrerRepository struct {
	mock.Mock
}

func (m *MockReferrerRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*company.Referrer, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Referrer), args.Error(1)
}

func (m *MockReferrerRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*company.Referrer, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*company.Referrer), args.Error(1)
}

func (m *MockReferrerRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]company.Referrer, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]company.Referrer), args.Error(1)
}

func (m *MockReferrerRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReferrerRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, companyID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockReferrerRepository) Save(ctx context.Context, r *company.Referrer) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockReferrerRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return m.Called(ctx, companyID, id).Error(0)
}

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) GetRevenueSummary(ctx context.Context, filter report.DashboardFilter) (*report.RevenueSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.RevenueSummary), args.Error(1)
}

func (m *MockDashboardRepository) GetUpcomingMoves(ctx context.Context, companyID uuid.UUID, from, to time.Time, limit int) ([]report.UpcomingMove, error) {
	args := m.Called(ctx, companyID, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.UpcomingMove), args.Error(1)
}

func (m *MockDashboardRepository) GetFleetUtilization(ctx context.Context, companyID uuid.UUID, day time.Time) (*report.FleetUtilization, error) {
	args := m.Called(ctx, companyID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.FleetUtilization), args.Error(1)
}

func (m *MockDashboardRepository) GetReferrerRanking(ctx context.Context, filter report.DashboardFilter) ([]report.ReferrerRanking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.ReferrerRanking), args.Error(1)
}

func (m *MockDashboardRepository) GetReferralStats(ctx context.Context, filter report.DashboardFilter) (*report.ReferralStats, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.ReferralStats), args.Error(1)
}
