package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/scheduling"
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


type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*quote.Quote, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindByNumber(ctx context.Context, companyID uuid.UUID, number string) (*quote.Quote, error) {
	args := m.Called(ctx, companyID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]quote.Quote, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuoteRepository) CountByStatus(ctx context.Context, companyID uuid.UUID) (map[quote.Status]int64, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[quote.Status]int64), args.Error(1)
}

func (m *MockQuoteRepository) FindStale(ctx context.Context, cutoff time.Time, limit int) ([]quote.Quote, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quote.Quote), args.Error(1)
}

func (m *MockQuoteRepository) Save(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuoteRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	args := m.Called(ctx, companyID, id)
	return args.Error(0)
}

type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*scheduling.Shift, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scheduling.Shift), args.Error(1)
}

func (m *MockShiftRepository) Find(ctx context.Context, companyID uuid.UUID, filter scheduling.ShiftFilter) ([]scheduling.Shift, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scheduling.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindForEmployeeOnDate(ctx context.Context, companyID, employeeID uuid.UUID, date time.Time) ([]scheduling.Shift, error) {
	args := m.Called(ctx, companyID, employeeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scheduling.Shift), args.Error(1)
}

func (m *MockShiftRepository) Save(ctx context.Context, shift *scheduling.Shift) error {
	return m.Called(ctx, shift).Error(0)
}

func (m *MockShiftRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	return m.Called(ctx, companyID, id).Error(0)
}

func (m *MockShiftRepository) DetachQuote(ctx context.Context, companyID, quoteID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID, quoteID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) FindOnDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]scheduling.TruckAssignment, error) {
	args := m.Called(ctx, companyID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scheduling.TruckAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) FindForQuote(ctx context.Context, companyID, quoteID uuid.UUID) ([]scheduling.TruckAssignment, error) {
	args := m.Called(ctx, companyID, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scheduling.TruckAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ExistsForTruckOnDate(ctx context.Context, companyID, truckID uuid.UUID, date time.Time) (bool, error) {
	args := m.Called(ctx, companyID, truckID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssignmentRepository) Save(ctx context.Context, a *scheduling.TruckAssignment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssignmentRepository) Delete(ctx context.Context, companyID, truckID, quoteID uuid.UUID) error {
	return m.Called(ctx, companyID, truckID, quoteID).Error(0)
}

func (m *MockAssignmentRepository) DeleteForQuote(ctx context.Context, companyID, quoteID uuid.UUID) (int64, error) {
	args := m.Called(ctx, companyID, quoteID)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}
