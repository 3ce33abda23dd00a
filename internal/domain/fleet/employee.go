package fleet

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/shared"
)

// EmployeeRole is what an employee does on a move
type EmployeeRole string

const (
	EmployeeRoleDriver EmployeeRole = "driver"
	EmployeeRoleMover  EmployeeRole = "mover"
	EmployeeRoleLead   EmployeeRole = "lead"
)

// IsValid returns true if the role is known
func (r EmployeeRole) IsValid() bool {
	return r == EmployeeRoleDriver || r == EmployeeRoleMover || r == EmployeeRoleLead
}

// EmployeeStatus represents whether an employee can be scheduled
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee is a crew member
type Employee struct {
	shared.CompanyAggregateRoot
	Code       string
	Name       string
	Email      string
	Phone      string
	Role       EmployeeRole
	HourlyRate decimal.Decimal
	Status     EmployeeStatus
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NewEmployee creates an active employee
func NewEmployee(companyID uuid.UUID, code, name string, role EmployeeRole) (*Employee, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateCode(code); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be driver, mover or lead")
	}

	return &Employee{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 code,
		Name:                 name,
		Role:                 role,
		HourlyRate:           decimal.Zero,
		Status:               EmployeeStatusActive,
	}, nil
}

// Update sets contact details, role and pay
func (e *Employee) Update(name, email, phone string, role EmployeeRole, hourlyRate decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email != "" && !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be driver, mover or lead")
	}
	if hourlyRate.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Hourly rate cannot be negative")
	}
	e.Name = name
	e.Email = email
	e.Phone = strings.TrimSpace(phone)
	e.Role = role
	e.HourlyRate = hourlyRate
	e.MarkModified()
	return nil
}

// Activate makes the employee schedulable
func (e *Employee) Activate() error {
	if e.Status == EmployeeStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Employee is already active")
	}
	e.Status = EmployeeStatusActive
	e.MarkModified()
	return nil
}

// Deactivate stops the employee from being scheduled
func (e *Employee) Deactivate() error {
	if e.Status == EmployeeStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Employee is already inactive")
	}
	e.Status = EmployeeStatusInactive
	e.MarkModified()
	e.AddDomainEvent(NewEmployeeDeactivatedEvent(e))
	return nil
}

// IsSchedulable is true for active employees
func (e *Employee) IsSchedulable() bool {
	return e.Status == EmployeeStatusActive
}
