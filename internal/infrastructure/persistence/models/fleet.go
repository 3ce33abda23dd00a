package models

import (
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/fleet"
)

// TruckModel is the persistence model for the Truck aggregate.
type TruckModel struct {
	CompanyAggregateModel
	Code         string            `gorm:"type:varchar(50);not null"`
	Name         string            `gorm:"type:varchar(100);not null"`
	LicensePlate string            `gorm:"type:varchar(20)"`
	CapacityCuFt int               `gorm:"column:capacity_cu_ft;not null;default:0"`
	Status       fleet.TruckStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes        string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TruckModel) TableName() string {
	return "trucks"
}

// ToDomain converts the persistence model to a domain Truck.
func (m *TruckModel) ToDomain() *fleet.Truck {
	return &fleet.Truck{
		CompanyAggregateRoot: m.ToCompanyAggregateRoot(),
		Code:                 m.Code,
		Name:                 m.Name,
		LicensePlate:         m.LicensePlate,
		CapacityCuFt:         m.CapacityCuFt,
		Status:               m.Status,
		Notes:                m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Truck.
func (m *TruckModel) FromDomain(t *fleet.Truck) {
	m.FromDomainCompanyAggregateRoot(t.CompanyAggregateRoot)
	m.Code = t.Code
	m.Name = t.Name
	m.LicensePlate = t.LicensePlate
	m.CapacityCuFt = t.CapacityCuFt
	m.Status = t.Status
	m.Notes = t.Notes
}

// TruckModelFromDomain creates a new persistence model from a domain Truck.
func TruckModelFromDomain(t *fleet.Truck) *TruckModel {
	m := &TruckModel{}
	m.FromDomain(t)
	return m
}

// EmployeeModel is the persistence model for the Employee aggregate.
type EmployeeModel struct {
	CompanyAggregateModel
	Code       string               `gorm:"type:varchar(50);not null"`
	Name       string               `gorm:"type:varchar(200);not null"`
	Email      string               `gorm:"type:varchar(200)"`
	Phone      string               `gorm:"type:varchar(50)"`
	Role       fleet.EmployeeRole   `gorm:"type:varchar(20);not null"`
	HourlyRate decimal.Decimal      `gorm:"type:decimal(12,2);not null"`
	Status     fleet.EmployeeStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee.
func (m *EmployeeModel) ToDomain() *fleet.Employee {
	return &fleet.Employee{
		CompanyAggregateRoot: m.ToCompanyAggregateRoot(),
		Code:                 m.Code,
		Name:                 m.Name,
		Email:                m.Email,
		Phone:                m.Phone,
		Role:                 m.Role,
		HourlyRate:           m.HourlyRate,
		Status:               m.Status,
	}
}

// FromDomain populates the persistence model from a domain Employee.
func (m *EmployeeModel) FromDomain(e *fleet.Employee) {
	m.FromDomainCompanyAggregateRoot(e.CompanyAggregateRoot)
	m.Code = e.Code
	m.Name = e.Name
	m.Email = e.Email
	m.Phone = e.Phone
	m.Role = e.Role
	m.HourlyRate = e.HourlyRate
	m.Status = e.Status
}

// EmployeeModelFromDomain creates a new persistence model from a domain Employee.
func EmployeeModelFromDomain(e *fleet.Employee) *EmployeeModel {
	m := &EmployeeModel{}
	m.FromDomain(e)
	return m
}
