package company

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/shared"
)

// ReferrerStatus represents whether a referral code is accepted
type ReferrerStatus string

const (
	ReferrerStatusActive   ReferrerStatus = "active"
	ReferrerStatusInactive ReferrerStatus = "inactive"
)

// Referrer is a partner (realtor, building manager) that sends customers
// and earns commission on completed moves.
type Referrer struct {
	shared.CompanyAggregateRoot
	Name           string
	Email          string
	Phone          string
	ReferralCode   string
	CommissionRate decimal.Decimal // percent of completed revenue
	Status         ReferrerStatus
}

var referralCodeRegex = regexp.MustCompile(`^[A-Z0-9]{4,20}$`)

// NewReferrer creates an active referrer
func NewReferrer(companyID uuid.UUID, name, code string, commission decimal.Decimal) (*Referrer, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Referrer name must be 1-200 characters")
	}
	code = NormalizeReferralCode(code)
	if !referralCodeRegex.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_REFERRAL_CODE", "Referral code must be 4-20 letters or digits")
	}
	if err := validateCommission(commission); err != nil {
		return nil, err
	}
	return &Referrer{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Name:                 name,
		ReferralCode:         code,
		CommissionRate:       commission,
		Status:               ReferrerStatusActive,
	}, nil
}

// NormalizeReferralCode upper-cases and trims a code as typed by a customer
func NormalizeReferralCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Update sets contact details and commission
func (r *Referrer) Update(name, email, phone string, commission decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Referrer name must be 1-200 characters")
	}
	if err := validateCommission(commission); err != nil {
		return err
	}
	r.Name = name
	r.Email = strings.ToLower(strings.TrimSpace(email))
	r.Phone = strings.TrimSpace(phone)
	r.CommissionRate = commission
	r.MarkModified()
	return nil
}

// Activate accepts the referral code again
func (r *Referrer) Activate() error {
	if r.Status == ReferrerStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Referrer is already active")
	}
	r.Status = ReferrerStatusActive
	r.MarkModified()
	return nil
}

// Deactivate stops accepting the referral code
func (r *Referrer) Deactivate() error {
	if r.Status == ReferrerStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Referrer is already inactive")
	}
	r.Status = ReferrerStatusInactive
	r.MarkModified()
	return nil
}

// IsActive returns true if the code is accepted
func (r *Referrer) IsActive() bool {
	return r.Status == ReferrerStatusActive
}

// CommissionOn returns the commission owed on an amount
func (r *Referrer) CommissionOn(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(r.CommissionRate).Div(decimal.NewFromInt(100)).Round(2)
}

func validateCommission(c decimal.Decimal) error {
	if c.IsNegative() || c.GreaterThan(decimal.NewFromInt(50)) {
		return shared.NewDomainError("INVALID_COMMISSION", "Commission rate must be between 0 and 50 percent")
	}
	return nil
}
