package fleet

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/shared"
)

type MockTruckRepository struct {
	mock.Mock
}

func (m *MockTruckRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*fleet.Truck, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Truck), args.Error(1)
}

func (m *MockTruckRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]fleet.Truck, error) {
	args := m.Called(ctx, companyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Truck), args.Error(1)
}

func (m *MockTruckRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]fleet.Truck, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Truck), args.Error(1)
}

func (m *MockTruckRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTruckRepository) FindSchedulable(ctx context.Context, companyID uuid.UUID) ([]fleet.Truck, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Truck), args.Error(1)
}

func (m *MockTruckRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, companyID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockTruckRepository) Save(ctx context.Context, truck *fleet.Truck) error {
	return m.Called(ctx, truck).Error(0)
}

func (m *MockTruckRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return m.Called(ctx, companyID, id).Error(0)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*fleet.Employee, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]fleet.Employee, error) {
	args := m.Called(ctx, companyID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]fleet.Employee, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) FindSchedulable(ctx context.Context, companyID uuid.UUID) ([]fleet.Employee, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, companyID, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, employee *fleet.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *MockEmployeeRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return m.Called(ctx, companyID, id).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}
