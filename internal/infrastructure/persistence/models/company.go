package models

import (
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/company"
)

// CompanyModel is the persistence model for the Company aggregate.
type CompanyModel struct {
	AggregateModel
	Code              string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string                `gorm:"type:varchar(200);not null"`
	ContactEmail      string                `gorm:"type:varchar(200)"`
	ContactPhone      string                `gorm:"type:varchar(50)"`
	Address           string                `gorm:"type:text"`
	Timezone          string                `gorm:"type:varchar(64);not null"`
	DefaultHourlyRate decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	DefaultTruckFee   decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	Status            company.CompanyStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CompanyModel) TableName() string {
	return "companies"
}

// ToDomain converts the persistence model to a domain Company.
func (m *CompanyModel) ToDomain() *company.Company {
	c := &company.Company{
		Code:              m.Code,
		Name:              m.Name,
		ContactEmail:      m.ContactEmail,
		ContactPhone:      m.ContactPhone,
		Address:           m.Address,
		Timezone:          m.Timezone,
		DefaultHourlyRate: m.DefaultHourlyRate,
		DefaultTruckFee:   m.DefaultTruckFee,
		Status:            m.Status,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Company.
func (m *CompanyModel) FromDomain(c *company.Company) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.ContactEmail = c.ContactEmail
	m.ContactPhone = c.ContactPhone
	m.Address = c.Address
	m.Timezone = c.Timezone
	m.DefaultHourlyRate = c.DefaultHourlyRate
	m.DefaultTruckFee = c.DefaultTruckFee
	m.Status = c.Status
}

// CompanyModelFromDomain creates a new persistence model from a domain Company.
func CompanyModelFromDomain(c *company.Company) *CompanyModel {
	m := &CompanyModel{}
	m.FromDomain(c)
	return m
}

// ReferrerModel is the persistence model for the Referrer aggregate.
type ReferrerModel struct {
	CompanyAggregateModel
	Name           string                 `gorm:"type:varchar(200);not null"`
	Email          string                 `gorm:"type:varchar(200)"`
	Phone          string                 `gorm:"type:varchar(50)"`
	ReferralCode   string                 `gorm:"type:varchar(20);not null;index"`
	CommissionRate decimal.Decimal        `gorm:"type:decimal(5,2);not null"`
	Status         company.ReferrerStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (ReferrerModel) TableName() string {
	return "referrers"
}

// ToDomain converts the persistence model to a domain Referrer.
func (m *ReferrerModel) ToDomain() *company.Referrer {
	return &company.Referrer{
		CompanyAggregateRoot: m.ToCompanyAggregateRoot(),
		Name:                 m.Name,
		Email:                m.Email,
		Phone:                m.Phone,
		ReferralCode:         m.ReferralCode,
		CommissionRate:       m.CommissionRate,
		Status:               m.Status,
	}
}

// FromDomain populates the persistence model from a domain Referrer.
func (m *ReferrerModel) FromDomain(r *company.Referrer) {
	m.FromDomainCompanyAggregateRoot(r.CompanyAggregateRoot)
	m.Name = r.Name
	m.Email = r.Email
	m.Phone = r.Phone
	m.ReferralCode = r.ReferralCode
	m.CommissionRate = r.CommissionRate
	m.Status = r.Status
}

// ReferrerModelFromDomain creates a new persistence model from a domain Referrer.
func ReferrerModelFromDomain(r *company.Referrer) *ReferrerModel {
	m := &ReferrerModel{}
	m.FromDomain(r)
	return m
}
