package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/quote"
)

const dateLayout = "2006-01-02"

// CustomerInput is the contact block of the quote form
type CustomerInput struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"omitempty,email,max=200"`
	Phone string `json:"phone" binding:"omitempty,max=50"`
}

// AddressInput is a pickup or drop-off address
type AddressInput struct {
	Street     string `json:"street" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"max=50"`
	PostalCode string `json:"postal_code" binding:"max=20"`
}

// CrewInput overrides the move size estimate; zero fields use the estimate
type CrewInput struct {
	CrewSize       int             `json:"crew_size" binding:"min=0,max=20"`
	TruckCount     int             `json:"truck_count" binding:"min=0,max=10"`
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
}

// SubmitQuoteRequest is the public quote form
type SubmitQuoteRequest struct {
	Customer     CustomerInput `json:"customer" binding:"required"`
	Origin       AddressInput  `json:"origin" binding:"required"`
	Destination  AddressInput  `json:"destination" binding:"required"`
	MoveDate     string        `json:"move_date" binding:"required,datetime=2006-01-02"`
	MoveSize     string        `json:"move_size" binding:"required,oneof=studio 1br 2br 3br 4br office"`
	Crew         CrewInput     `json:"crew"`
	Notes        string        `json:"notes" binding:"max=2000"`
	ReferralCode string        `json:"referral_code" binding:"omitempty,max=20"`
}

// UpdateQuoteRequest replaces the move details of an open quote
type UpdateQuoteRequest struct {
	Customer    CustomerInput `json:"customer" binding:"required"`
	Origin      AddressInput  `json:"origin" binding:"required"`
	Destination AddressInput  `json:"destination" binding:"required"`
	MoveDate    string        `json:"move_date" binding:"required,datetime=2006-01-02"`
	MoveSize    string        `json:"move_size" binding:"required,oneof=studio 1br 2br 3br 4br office"`
	Crew        CrewInput     `json:"crew"`
	Notes       string        `json:"notes" binding:"max=2000"`
}

// RepriceRequest optionally overrides the company default rates
type RepriceRequest struct {
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
	TruckFee   *decimal.Decimal `json:"truck_fee"`
}

// BookQuoteRequest books a quote, optionally reserving trucks for the day
type BookQuoteRequest struct {
	TruckIDs []uuid.UUID `json:"truck_ids" binding:"omitempty,max=10,dive,required"`
}

// CancelQuoteRequest carries the cancel reason
type CancelQuoteRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// AttachmentUploadRequest asks for a presigned upload URL
type AttachmentUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=200"`
	ContentType string `json:"content_type" binding:"required,max=100"`
	FileSize    int64  `json:"file_size" binding:"required,min=1"`
}

// AttachmentURLResponse is a presigned URL and the object it points to
type AttachmentURLResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// QuoteListFilter holds list query parameters
type QuoteListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,oneof=pending quoted booked completed cancelled expired"`
	From       string     `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To         string     `form:"to" binding:"omitempty,datetime=2006-01-02"`
	ReferrerID *uuid.UUID `form:"referrer_id"`
	Page       int        `form:"page" binding:"min=0"`
	PageSize   int        `form:"page_size" binding:"min=0,max=100"`
	OrderBy    string     `form:"order_by" binding:"omitempty,oneof=created_at move_date total_price quote_number"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// AddressResponse is the API view of a Location
type AddressResponse struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// QuoteResponse is the full API view of a quote
type QuoteResponse struct {
	ID               uuid.UUID       `json:"id"`
	QuoteNumber      string          `json:"quote_number"`
	Status           string          `json:"status"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email,omitempty"`
	CustomerPhone    string          `json:"customer_phone,omitempty"`
	Origin           AddressResponse `json:"origin"`
	Destination      AddressResponse `json:"destination"`
	MoveDate         string          `json:"move_date"`
	MoveSize         string          `json:"move_size"`
	CrewSize         int             `json:"crew_size"`
	TruckCount       int             `json:"truck_count"`
	EstimatedHours   decimal.Decimal `json:"estimated_hours"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	TruckFee         decimal.Decimal `json:"truck_fee"`
	BasePrice        decimal.Decimal `json:"base_price"`
	SeasonAdjustment decimal.Decimal `json:"season_adjustment"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	AppliedRules     []string        `json:"applied_rules"`
	Notes            string          `json:"notes,omitempty"`
	ReferrerID       *uuid.UUID      `json:"referrer_id,omitempty"`
	ReferralCode     string          `json:"referral_code,omitempty"`
	CancelReason     string          `json:"cancel_reason,omitempty"`
	Attachments      []string        `json:"attachments"`
	QuotedAt         *time.Time      `json:"quoted_at,omitempty"`
	BookedAt         *time.Time      `json:"booked_at,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// QuoteListResponse is the list row of a quote
type QuoteListResponse struct {
	ID           uuid.UUID       `json:"id"`
	QuoteNumber  string          `json:"quote_number"`
	Status       string          `json:"status"`
	CustomerName string          `json:"customer_name"`
	MoveDate     string          `json:"move_date"`
	MoveSize     string          `json:"move_size"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	ReferralCode string          `json:"referral_code,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SubmitQuoteResponse is what the public form gets back
type SubmitQuoteResponse struct {
	QuoteNumber      string          `json:"quote_number"`
	MoveDate         string          `json:"move_date"`
	MoveSize         string          `json:"move_size"`
	CrewSize         int             `json:"crew_size"`
	TruckCount       int             `json:"truck_count"`
	EstimatedHours   decimal.Decimal `json:"estimated_hours"`
	BasePrice        decimal.Decimal `json:"base_price"`
	SeasonAdjustment decimal.Decimal `json:"season_adjustment"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	AppliedRules     []string        `json:"applied_rules"`
}

// StatusSummaryResponse counts quotes by status
type StatusSummaryResponse struct {
	Counts map[string]int64 `json:"counts"`
	Total  int64            `json:"total"`
	Open   int64            `json:"open"`
}

// ExpireResult reports a stale quote sweep
type ExpireResult struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Failed  int `json:"failed"`
}

func (a AddressInput) toDomain() quote.Location {
	return quote.Location{
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
	}
}

func (c CustomerInput) toDomain() quote.Customer {
	return quote.Customer{Name: c.Name, Email: c.Email, Phone: c.Phone}
}

func (c CrewInput) toDomain() quote.Crew {
	return quote.Crew{Size: c.CrewSize, TruckCount: c.TruckCount, EstimatedHours: c.EstimatedHours}
}

func toAddressResponse(l quote.Location) AddressResponse {
	return AddressResponse{Street: l.Street, City: l.City, State: l.State, PostalCode: l.PostalCode}
}

// ToQuoteResponse converts a domain quote
func ToQuoteResponse(q *quote.Quote) QuoteResponse {
	rules := q.AppliedRules
	if rules == nil {
		rules = []string{}
	}
	attachments := q.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return QuoteResponse{
		ID:               q.ID,
		QuoteNumber:      q.QuoteNumber,
		Status:           string(q.Status),
		CustomerName:     q.Customer.Name,
		CustomerEmail:    q.Customer.Email,
		CustomerPhone:    q.Customer.Phone,
		Origin:           toAddressResponse(q.Origin),
		Destination:      toAddressResponse(q.Destination),
		MoveDate:         q.MoveDate.Format(dateLayout),
		MoveSize:         string(q.MoveSize),
		CrewSize:         q.Crew.Size,
		TruckCount:       q.Crew.TruckCount,
		EstimatedHours:   q.Crew.EstimatedHours,
		HourlyRate:       q.Rates.HourlyRate,
		TruckFee:         q.Rates.TruckFee,
		BasePrice:        q.BasePrice,
		SeasonAdjustment: q.SeasonAdjustment,
		TotalPrice:       q.TotalPrice,
		AppliedRules:     rules,
		Notes:            q.Notes,
		ReferrerID:       q.ReferrerID,
		ReferralCode:     q.ReferrerCode,
		CancelReason:     q.CancelReason,
		Attachments:      attachments,
		QuotedAt:         q.QuotedAt,
		BookedAt:         q.BookedAt,
		CompletedAt:      q.CompletedAt,
		CancelledAt:      q.CancelledAt,
		Version:          q.Version,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// ToQuoteListResponse converts a domain quote to a list row
func ToQuoteListResponse(q *quote.Quote) QuoteListResponse {
	return QuoteListResponse{
		ID:           q.ID,
		QuoteNumber:  q.QuoteNumber,
		Status:       string(q.Status),
		CustomerName: q.Customer.Name,
		MoveDate:     q.MoveDate.Format(dateLayout),
		MoveSize:     string(q.MoveSize),
		TotalPrice:   q.TotalPrice,
		ReferralCode: q.ReferrerCode,
		CreatedAt:    q.CreatedAt,
	}
}

func toSubmitResponse(q *quote.Quote) SubmitQuoteResponse {
	return SubmitQuoteResponse{
		QuoteNumber:      q.QuoteNumber,
		MoveDate:         q.MoveDate.Format(dateLayout),
		MoveSize:         string(q.MoveSize),
		CrewSize:         q.Crew.Size,
		TruckCount:       q.Crew.TruckCount,
		EstimatedHours:   q.Crew.EstimatedHours,
		BasePrice:        q.BasePrice,
		SeasonAdjustment: q.SeasonAdjustment,
		TotalPrice:       q.TotalPrice,
		AppliedRules:     q.AppliedRules,
	}
}
