package models

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/pricing"
)

// SeasonRuleModel is the persistence model for the SeasonRule aggregate.
// The schedule and adjustment value objects are flattened into columns.
type SeasonRuleModel struct {
	CompanyAggregateModel
	Name            string                 `gorm:"type:varchar(100);not null"`
	Description     string                 `gorm:"type:text"`
	Recurrence      pricing.Recurrence     `gorm:"type:varchar(20);not null"`
	DaysOfWeek      string                 `gorm:"type:varchar(20)"`
	DayOfMonth      int                    `gorm:"not null;default:0"`
	Month           int                    `gorm:"not null;default:0"`
	EndMonth        int                    `gorm:"not null;default:0"`
	SpecificDate    *time.Time             `gorm:"type:date"`
	AdjustmentType  pricing.AdjustmentType `gorm:"type:varchar(20);not null"`
	AdjustmentValue decimal.Decimal        `gorm:"type:decimal(12,2);not null"`
	Priority        int                    `gorm:"not null;default:0;index"`
	IsActive        bool                   `gorm:"not null"`
	Exclusive       bool                   `gorm:"not null;default:false"`
	StartDate       *time.Time             `gorm:"type:date"`
	EndDate         *time.Time             `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (SeasonRuleModel) TableName() string {
	return "season_rules"
}

// ToDomain converts the persistence model to a domain SeasonRule.
func (m *SeasonRuleModel) ToDomain() *pricing.SeasonRule {
	return &pricing.SeasonRule{
		CompanyAggregateRoot: m.ToCompanyAggregateRoot(),
		Name:                 m.Name,
		Description:          m.Description,
		Schedule: pricing.Schedule{
			Recurrence:   m.Recurrence,
			DaysOfWeek:   pricing.DecodeDaysOfWeek(m.DaysOfWeek),
			DayOfMonth:   m.DayOfMonth,
			Month:        m.Month,
			EndMonth:     m.EndMonth,
			SpecificDate: m.SpecificDate,
		},
		Adjustment: pricing.Adjustment{
			Type:  m.AdjustmentType,
			Value: m.AdjustmentValue,
		},
		Priority:  m.Priority,
		IsActive:  m.IsActive,
		Exclusive: m.Exclusive,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
	}
}

// FromDomain populates the persistence model from a domain SeasonRule.
func (m *SeasonRuleModel) FromDomain(r *pricing.SeasonRule) {
	m.FromDomainCompanyAggregateRoot(r.CompanyAggregateRoot)
	m.Name = r.Name
	m.Description = r.Description
	m.Recurrence = r.Schedule.Recurrence
	m.DaysOfWeek = pricing.EncodeDaysOfWeek(r.Schedule.DaysOfWeek)
	m.DayOfMonth = r.Schedule.DayOfMonth
	m.Month = r.Schedule.Month
	m.EndMonth = r.Schedule.EndMonth
	m.SpecificDate = r.Schedule.SpecificDate
	m.AdjustmentType = r.Adjustment.Type
	m.AdjustmentValue = r.Adjustment.Value
	m.Priority = r.Priority
	m.IsActive = r.IsActive
	m.Exclusive = r.Exclusive
	m.StartDate = r.StartDate
	m.EndDate = r.EndDate
}

// SeasonRuleModelFromDomain creates a new persistence model from a domain SeasonRule.
func SeasonRuleModelFromDomain(r *pricing.SeasonRule) *SeasonRuleModel {
	m := &SeasonRuleModel{}
	m.FromDomain(r)
	return m
}

// HolidayModel is the persistence model for the Holiday aggregate.
type HolidayModel struct {
	CompanyAggregateModel
	Name            string    `gorm:"type:varchar(100);not null"`
	Date            time.Time `gorm:"type:date;not null;index"`
	RecurringYearly bool      `gorm:"not null;default:false"`
	Observed        bool      `gorm:"not null"`
}

// TableName returns the table name for GORM
func (HolidayModel) TableName() string {
	return "holidays"
}

// ToDomain converts the persistence model to a domain Holiday.
func (m *HolidayModel) ToDomain() *pricing.Holiday {
	return &pricing.Holiday{
		CompanyAggregateRoot: m.ToCompanyAggregateRoot(),
		Name:                 m.Name,
		Date:                 m.Date,
		RecurringYearly:      m.RecurringYearly,
		Observed:             m.Observed,
	}
}

// FromDomain populates the persistence model from a domain Holiday.
func (m *HolidayModel) FromDomain(h *pricing.Holiday) {
	m.FromDomainCompanyAggregateRoot(h.CompanyAggregateRoot)
	m.Name = h.Name
	m.Date = h.Date
	m.RecurringYearly = h.RecurringYearly
	m.Observed = h.Observed
}

// HolidayModelFromDomain creates a new persistence model from a domain Holiday.
func HolidayModelFromDomain(h *pricing.Holiday) *HolidayModel {
	m := &HolidayModel{}
	m.FromDomain(h)
	return m
}
