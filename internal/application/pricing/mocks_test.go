package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/syncworks/backend/internal/domain/pricing"
	"github.com/syncworks/backend/internal/domain/shared"
)

type MockSeasonRuleRepository struct {
	mock.Mock
}

func (m *MockSeasonRuleRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*pricing.SeasonRule, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.SeasonRule), args.Error(1)
}

func (m *MockSeasonRuleRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]pricing.SeasonRule, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.SeasonRule), args.Error(1)
}

func (m *MockSeasonRuleRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSeasonRuleRepository) FindActiveForCompany(ctx context.Context, companyID uuid.UUID) ([]pricing.SeasonRule, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.SeasonRule), args.Error(1)
}

func (m *MockSeasonRuleRepository) ExistsByName(ctx context.Context, companyID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, companyID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeasonRuleRepository) Save(ctx context.Context, rule *pricing.SeasonRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockSeasonRuleRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

type MockHolidayRepository struct {
	mock.Mock
}

func (m *MockHolidayRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*pricing.Holiday, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Holiday), args.Error(1)
}

func (m *MockHolidayRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]pricing.Holiday, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Holiday), args.Error(1)
}

func (m *MockHolidayRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHolidayRepository) FindForRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]pricing.Holiday, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.Holiday), args.Error(1)
}

func (m *MockHolidayRepository) ExistsOnDate(ctx context.Context, companyID uuid.UUID, date time.Time) (bool, error) {
	args := m.Called(ctx, companyID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockHolidayRepository) Save(ctx context.Context, holiday *pricing.Holiday) error {
	args := m.Called(ctx, holiday)
	return args.Error(0)
}

func (m *MockHolidayRepository) SaveBatch(ctx context.Context, holidays []*pricing.Holiday) error {
	args := m.Called(ctx, holidays)
	return args.Error(0)
}

func (m *MockHolidayRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
