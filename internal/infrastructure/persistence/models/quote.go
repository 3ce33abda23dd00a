package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/quote"
)

// QuoteModel is the persistence model for the Quote aggregate.
type QuoteModel struct {
	CompanyAggregateModel
	QuoteNumber      string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	CustomerName     string          `gorm:"type:varchar(200);not null"`
	CustomerEmail    string          `gorm:"type:varchar(200);not null"`
	CustomerPhone    string          `gorm:"type:varchar(50)"`
	OriginStreet     string          `gorm:"type:varchar(200);not null"`
	OriginCity       string          `gorm:"type:varchar(100);not null"`
	OriginState      string          `gorm:"type:varchar(50)"`
	OriginPostalCode string          `gorm:"type:varchar(20)"`
	DestStreet       string          `gorm:"column:destination_street;type:varchar(200);not null"`
	DestCity         string          `gorm:"column:destination_city;type:varchar(100);not null"`
	DestState        string          `gorm:"column:destination_state;type:varchar(50)"`
	DestPostalCode   string          `gorm:"column:destination_postal_code;type:varchar(20)"`
	MoveDate         time.Time       `gorm:"type:date;not null;index"`
	MoveSize         quote.MoveSize  `gorm:"type:varchar(20);not null"`
	CrewSize         int             `gorm:"not null"`
	TruckCount       int             `gorm:"not null"`
	EstimatedHours   decimal.Decimal `gorm:"type:decimal(6,2);not null"`
	HourlyRate       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TruckFee         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BasePrice        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	SeasonAdjustment decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AppliedRules     StringList      `gorm:"type:jsonb"`
	Notes            string          `gorm:"type:text"`
	ReferrerID       *uuid.UUID      `gorm:"type:uuid;index"`
	ReferrerCode     string          `gorm:"type:varchar(20)"`
	Status           quote.Status    `gorm:"type:varchar(20);not null;index"`
	QuotedAt         *time.Time
	BookedAt         *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
	CancelReason     string     `gorm:"type:varchar(500)"`
	Attachments      StringList `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (QuoteModel) TableName() string {
	return "quotes"
}

// ToDomain converts the persistence model to a domain Quote.
func (m *QuoteModel) ToDomain() *quote.Quote {
	return &quote.Quote{
		CompanyAggregateRoot: m.ToCompanyAggregateRoot(),
		QuoteNumber:          m.QuoteNumber,
		Customer: quote.Customer{
			Name:  m.CustomerName,
			Email: m.CustomerEmail,
			Phone: m.CustomerPhone,
		},
		Origin: quote.Location{
			Street:     m.OriginStreet,
			City:       m.OriginCity,
			State:      m.OriginState,
			PostalCode: m.OriginPostalCode,
		},
		Destination: quote.Location{
			Street:     m.DestStreet,
			City:       m.DestCity,
			State:      m.DestState,
			PostalCode: m.DestPostalCode,
		},
		MoveDate: m.MoveDate,
		MoveSize: m.MoveSize,
		Crew: quote.Crew{
			Size:           m.CrewSize,
			TruckCount:     m.TruckCount,
			EstimatedHours: m.EstimatedHours,
		},
		Rates: quote.Rates{
			HourlyRate: m.HourlyRate,
			TruckFee:   m.TruckFee,
		},
		BasePrice:        m.BasePrice,
		SeasonAdjustment: m.SeasonAdjustment,
		TotalPrice:       m.TotalPrice,
		AppliedRules:     []string(m.AppliedRules),
		Notes:            m.Notes,
		ReferrerID:       m.ReferrerID,
		ReferrerCode:     m.ReferrerCode,
		Status:           m.Status,
		QuotedAt:         m.QuotedAt,
		BookedAt:         m.BookedAt,
		CompletedAt:      m.CompletedAt,
		CancelledAt:      m.CancelledAt,
		CancelReason:     m.CancelReason,
		Attachments:      []string(m.Attachments),
	}
}

// FromDomain populates the persistence model from a domain Quote.
func (m *QuoteModel) FromDomain(q *quote.Quote) {
	m.FromDomainCompanyAggregateRoot(q.CompanyAggregateRoot)
	m.QuoteNumber = q.QuoteNumber
	m.CustomerName = q.Customer.Name
	m.CustomerEmail = q.Customer.Email
	m.CustomerPhone = q.Customer.Phone
	m.OriginStreet = q.Origin.Street
	m.OriginCity = q.Origin.City
	m.OriginState = q.Origin.State
	m.OriginPostalCode = q.Origin.PostalCode
	m.DestStreet = q.Destination.Street
	m.DestCity = q.Destination.City
	m.DestState = q.Destination.State
	m.DestPostalCode = q.Destination.PostalCode
	m.MoveDate = q.MoveDate
	m.MoveSize = q.MoveSize
	m.CrewSize = q.Crew.Size
	m.TruckCount = q.Crew.TruckCount
	m.EstimatedHours = q.Crew.EstimatedHours
	m.HourlyRate = q.Rates.HourlyRate
	m.TruckFee = q.Rates.TruckFee
	m.BasePrice = q.BasePrice
	m.SeasonAdjustment = q.SeasonAdjustment
	m.TotalPrice = q.TotalPrice
	m.AppliedRules = StringList(q.AppliedRules)
	m.Notes = q.Notes
	m.ReferrerID = q.ReferrerID
	m.ReferrerCode = q.ReferrerCode
	m.Status = q.Status
	m.QuotedAt = q.QuotedAt
	m.BookedAt = q.BookedAt
	m.CompletedAt = q.CompletedAt
	m.CancelledAt = q.CancelledAt
	m.CancelReason = q.CancelReason
	m.Attachments = StringList(q.Attachments)
}

// QuoteModelFromDomain creates a new persistence model from a domain Quote.
func QuoteModelFromDomain(q *quote.Quote) *QuoteModel {
	m := &QuoteModel{}
	m.FromDomain(q)
	return m
}
