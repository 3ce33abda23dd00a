package fleet

import (
	"context"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/shared"
)

// EmployeeService manages the crew roster
type EmployeeService struct {
	employeeRepo fleet.EmployeeRepository
	publisher    shared.EventPublisher
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo fleet.EmployeeRepository, publisher shared.EventPublisher) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, publisher: publisher}
}

// Create adds an employee
func (s *EmployeeService) Create(ctx context.Context, companyID uuid.UUID, req CreateEmployeeRequest) (*EmployeeResponse, error) {
	emp, err := fleet.NewEmployee(companyID, req.Code, req.Name, fleet.EmployeeRole(req.Role))
	if err != nil {
		return nil, err
	}
	exists, err := s.employeeRepo.ExistsByCode(ctx, companyID, emp.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Employee with this code already exists")
	}
	if err := emp.Update(emp.Name, req.Email, req.Phone, emp.Role, req.HourlyRate); err != nil {
		return nil, err
	}

	if err := s.save(ctx, emp); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(emp)
	return &resp, nil
}

// GetByID returns an employee
func (s *EmployeeService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(emp)
	return &resp, nil
}

// List returns a page of employees
func (s *EmployeeService) List(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]EmployeeResponse, int64, error) {
	domainFilter := toDomainFilter(filter, "name")
	employees, err := s.employeeRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.employeeRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToEmployeeResponses(employees), total, nil
}

// Update changes contact details, role or pay
func (s *EmployeeService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateEmployeeRequest) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	name, email, phone, role, rate := emp.Name, emp.Email, emp.Phone, emp.Role, emp.HourlyRate
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Role != nil {
		role = fleet.EmployeeRole(*req.Role)
	}
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}
	if err := emp.Update(name, email, phone, role, rate); err != nil {
		return nil, err
	}

	if err := s.save(ctx, emp); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(emp)
	return &resp, nil
}

// Activate returns an employee to the schedulable roster
func (s *EmployeeService) Activate(ctx context.Context, companyID, id uuid.UUID) (*EmployeeResponse, error) {
	return s.changeStatus(ctx, companyID, id, (*fleet.Employee).Activate)
}

// Deactivate takes an employee off the roster
func (s *EmployeeService) Deactivate(ctx context.Context, companyID, id uuid.UUID) (*EmployeeResponse, error) {
	return s.changeStatus(ctx, companyID, id, (*fleet.Employee).Deactivate)
}

func (s *EmployeeService) changeStatus(ctx context.Context, companyID, id uuid.UUID, change func(*fleet.Employee) error) (*EmployeeResponse, error) {
	emp, err := s.employeeRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if err := change(emp); err != nil {
		return nil, err
	}
	if err := s.save(ctx, emp); err != nil {
		return nil, err
	}
	resp := ToEmployeeResponse(emp)
	return &resp, nil
}

// Delete removes an employee
func (s *EmployeeService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.employeeRepo.DeleteForCompany(ctx, companyID, id)
}

func (s *EmployeeService) save(ctx context.Context, emp *fleet.Employee) error {
	if err := s.employeeRepo.Save(ctx, emp); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, emp)
}
