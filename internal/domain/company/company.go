package company

import (
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // containers ship without zoneinfo

	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/shared"
)

// CompanyStatus represents whether a company can use the system
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusSuspended CompanyStatus = "suspended"
)

// Company is a moving company using SyncWorks. It owns all other records.
type Company struct {
	shared.BaseAggregateRoot
	Code              string
	Name              string
	ContactEmail      string
	ContactPhone      string
	Address           string
	Timezone          string
	DefaultHourlyRate decimal.Decimal
	DefaultTruckFee   decimal.Decimal
	Status            CompanyStatus
}

var companyCodeRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,49}$`)

// NewCompany creates an active company with US Central time
func NewCompany(code, name string) (*Company, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if !companyCodeRegex.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Company code must be 2-50 lowercase letters, numbers or hyphens")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Company name must be 1-200 characters")
	}
	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Timezone:          "America/Chicago",
		DefaultHourlyRate: decimal.NewFromInt(45),
		DefaultTruckFee:   decimal.NewFromInt(125),
		Status:            CompanyStatusActive,
	}, nil
}

// UpdateProfile sets contact details and timezone
func (c *Company) UpdateProfile(name, email, phone, address, timezone string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name must be 1-200 characters")
	}
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return shared.NewDomainError("INVALID_TIMEZONE", "Unknown timezone "+timezone)
		}
		c.Timezone = timezone
	}
	c.Name = name
	c.ContactEmail = strings.ToLower(strings.TrimSpace(email))
	c.ContactPhone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.MarkModified()
	return nil
}

// SetDefaultRates sets the rates new quotes are priced with
func (c *Company) SetDefaultRates(hourly, truckFee decimal.Decimal) error {
	if !hourly.IsPositive() {
		return shared.NewDomainError("INVALID_RATE", "Hourly rate must be positive")
	}
	if truckFee.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Truck fee cannot be negative")
	}
	c.DefaultHourlyRate = hourly
	c.DefaultTruckFee = truckFee
	c.MarkModified()
	return nil
}

// Suspend blocks the company
func (c *Company) Suspend() error {
	if c.Status == CompanyStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Company is already suspended")
	}
	c.Status = CompanyStatusSuspended
	c.MarkModified()
	return nil
}

// Reactivate lifts a suspension
func (c *Company) Reactivate() error {
	if c.Status == CompanyStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Company is already active")
	}
	c.Status = CompanyStatusActive
	c.MarkModified()
	return nil
}

// IsActive returns true if the company may take quotes
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// Location returns the company's time zone, falling back to UTC
func (c *Company) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
