package company

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/report"
)

// CreateCompanyRequest onboards a company
type CreateCompanyRequest struct {
	Code     string `json:"code" binding:"required,min=2,max=50"`
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"max=50"`
	Address  string `json:"address" binding:"max=500"`
	Timezone string `json:"timezone" binding:"omitempty,timezone"`
}

// UpdateCompanyRequest updates the company profile
type UpdateCompanyRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone" binding:"max=50"`
	Address  string `json:"address" binding:"max=500"`
	Timezone string `json:"timezone" binding:"omitempty,timezone"`
}

// UpdateRatesRequest sets the default rates for new quotes
type UpdateRatesRequest struct {
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	TruckFee   decimal.Decimal `json:"truck_fee"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID                uuid.UUID       `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	ContactEmail      string          `json:"contact_email,omitempty"`
	ContactPhone      string          `json:"contact_phone,omitempty"`
	Address           string          `json:"address,omitempty"`
	Timezone          string          `json:"timezone"`
	DefaultHourlyRate decimal.Decimal `json:"default_hourly_rate"`
	DefaultTruckFee   decimal.Decimal `json:"default_truck_fee"`
	Status            string          `json:"status"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// PublicCompanyResponse is what the public quote form may see
type PublicCompanyResponse struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	Timezone     string `json:"timezone"`
	AcceptsQuote bool   `json:"accepts_quotes"`
}

// CreateReferrerRequest represents a request to add a referrer
type CreateReferrerRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=200"`
	Email          string          `json:"email" binding:"omitempty,email"`
	Phone          string          `json:"phone" binding:"max=50"`
	ReferralCode   string          `json:"referral_code" binding:"required,min=4,max=20,alphanum"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

// UpdateReferrerRequest represents a request to update a referrer
type UpdateReferrerRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Phone          *string          `json:"phone" binding:"omitempty,max=50"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

// ReferrerListFilter narrows the referrer listing
type ReferrerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ReferrerResponse represents a referrer in API responses
type ReferrerResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	ReferralCode   string          `json:"referral_code"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ReferralStatsRequest sets the period for referral stats
type ReferralStatsRequest struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ReferralStatsResponse is a referrer with its numbers for a period
type ReferralStatsResponse struct {
	Referrer ReferrerResponse     `json:"referrer"`
	From     string               `json:"from"`
	To       string               `json:"to"`
	Stats    report.ReferralStats `json:"stats"`
}

// ToCompanyResponse converts a domain Company to CompanyResponse
func ToCompanyResponse(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:                c.ID,
		Code:              c.Code,
		Name:              c.Name,
		ContactEmail:      c.ContactEmail,
		ContactPhone:      c.ContactPhone,
		Address:           c.Address,
		Timezone:          c.Timezone,
		DefaultHourlyRate: c.DefaultHourlyRate,
		DefaultTruckFee:   c.DefaultTruckFee,
		Status:            string(c.Status),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// ToReferrerResponse converts a domain Referrer to ReferrerResponse
func ToReferrerResponse(r *company.Referrer) ReferrerResponse {
	return ReferrerResponse{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		ReferralCode:   r.ReferralCode,
		CommissionRate: r.CommissionRate,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
