package quote

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/shared"
)

// Status is the lifecycle state of a quote
type Status string

const (
	StatusPending   Status = "pending"
	StatusQuoted    Status = "quoted"
	StatusBooked    Status = "booked"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// AllStatuses in lifecycle order
var AllStatuses = []Status{StatusPending, StatusQuoted, StatusBooked, StatusCompleted, StatusCancelled, StatusExpired}

// IsValid returns true if the status is known
func (s Status) IsValid() bool {
	for _, st := range AllStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// IsOpen is true while the customer has not booked or walked away
func (s Status) IsOpen() bool {
	return s == StatusPending || s == StatusQuoted
}

// Customer holds the contact details from the quote form
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Location is a pickup or drop-off address
type Location struct {
	Street     string
	City       string
	State      string
	PostalCode string
}

// String renders the address on one line
func (l Location) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.Street, l.City, strings.TrimSpace(l.State + " " + l.PostalCode)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Crew is the labor and equipment a move needs
type Crew struct {
	Size           int
	TruckCount     int
	EstimatedHours decimal.Decimal
}

// Rates are the company prices used to compute the base price
type Rates struct {
	HourlyRate decimal.Decimal // per mover
	TruckFee   decimal.Decimal // per truck
}

// Quote is a customer's request for a move and its price
type Quote struct {
	shared.CompanyAggregateRoot
	QuoteNumber      string
	Customer         Customer
	Origin           Location
	Destination      Location
	MoveDate         time.Time
	MoveSize         MoveSize
	Crew             Crew
	Rates            Rates
	BasePrice        decimal.Decimal
	SeasonAdjustment decimal.Decimal
	TotalPrice       decimal.Decimal
	AppliedRules     []string
	Notes            string
	ReferrerID       *uuid.UUID
	ReferrerCode     string
	Status           Status
	QuotedAt         *time.Time
	BookedAt         *time.Time
	CompletedAt      *time.Time
	CancelledAt      *time.Time
	CancelReason     string
	Attachments      []string
}

// NewQuote creates a pending quote. Crew fields left at zero are filled
// from the move size defaults.
func NewQuote(companyID uuid.UUID, customer Customer, origin, destination Location, moveDate time.Time, size MoveSize, crew Crew) (*Quote, error) {
	customer = normalizeCustomer(customer)
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if err := validateLocation("origin", origin); err != nil {
		return nil, err
	}
	if err := validateLocation("destination", destination); err != nil {
		return nil, err
	}
	if moveDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_MOVE_DATE", "Move date is required")
	}
	if !size.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVE_SIZE", "Move size must be one of studio, 1br, 2br, 3br, 4br, office")
	}
	crew, err := resolveCrew(size, crew)
	if err != nil {
		return nil, err
	}

	q := &Quote{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Customer:             customer,
		Origin:               origin,
		Destination:          destination,
		MoveDate:             shared.TruncateDay(moveDate),
		MoveSize:             size,
		Crew:                 crew,
		BasePrice:            decimal.Zero,
		SeasonAdjustment:     decimal.Zero,
		TotalPrice:           decimal.Zero,
		AppliedRules:         []string{},
		Status:               StatusPending,
	}
	q.QuoteNumber = GenerateQuoteNumber(q.CreatedAt, q.ID)

	q.AddDomainEvent(NewQuoteSubmittedEvent(q))

	return q, nil
}

// GenerateQuoteNumber builds Q-YYYYMMDD-XXXXXX from the creation day and id
func GenerateQuoteNumber(at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("Q-%s-%s", at.Format("20060102"), strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6]))
}

// ErrQuoteNumberTaken is returned by repositories when another quote
// already holds the number
var ErrQuoteNumberTaken = shared.NewDomainError("QUOTE_NUMBER_TAKEN", "Quote number is already in use")

// Renumber draws a new quote number for a quote that has not been stored.
// Pending submitted events carry the new number.
func (q *Quote) Renumber() {
	q.QuoteNumber = GenerateQuoteNumber(q.CreatedAt, uuid.New())
	for _, e := range q.GetDomainEvents() {
		if submitted, ok := e.(*QuoteSubmittedEvent); ok {
			submitted.QuoteNumber = q.QuoteNumber
		}
	}
}

// BasePrice is movers × hours × hourly rate plus the truck fees
func BasePrice(crew Crew, rates Rates) decimal.Decimal {
	labor := rates.HourlyRate.
		Mul(decimal.NewFromInt(int64(crew.Size))).
		Mul(crew.EstimatedHours)
	trucks := rates.TruckFee.Mul(decimal.NewFromInt(int64(crew.TruckCount)))
	return labor.Add(trucks).Round(2)
}

// ComputeBasePrice is BasePrice for the quote's crew and rates
func (q *Quote) ComputeBasePrice() decimal.Decimal {
	return BasePrice(q.Crew, q.Rates)
}

// ApplyPricing sets rates and the season adjustment and recomputes totals
func (q *Quote) ApplyPricing(rates Rates, adjustment decimal.Decimal, ruleNames []string) error {
	if !q.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot reprice a %s quote", q.Status))
	}
	if rates.HourlyRate.IsNegative() || rates.TruckFee.IsNegative() {
		return shared.NewDomainError("INVALID_RATE", "Rates cannot be negative")
	}

	q.Rates = rates
	q.BasePrice = q.ComputeBasePrice()
	q.SeasonAdjustment = adjustment.Round(2)
	total := q.BasePrice.Add(q.SeasonAdjustment)
	if total.IsNegative() {
		total = decimal.Zero
	}
	q.TotalPrice = total.Round(2)
	if ruleNames == nil {
		ruleNames = []string{}
	}
	q.AppliedRules = ruleNames
	q.MarkModified()
	return nil
}

// UpdateDetails changes the move details of an open quote.
// Callers must reprice afterwards.
func (q *Quote) UpdateDetails(customer Customer, origin, destination Location, moveDate time.Time, size MoveSize, crew Crew, notes string) error {
	if !q.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit a %s quote", q.Status))
	}
	customer = normalizeCustomer(customer)
	if err := validateCustomer(customer); err != nil {
		return err
	}
	if err := validateLocation("origin", origin); err != nil {
		return err
	}
	if err := validateLocation("destination", destination); err != nil {
		return err
	}
	if moveDate.IsZero() {
		return shared.NewDomainError("INVALID_MOVE_DATE", "Move date is required")
	}
	if !size.IsValid() {
		return shared.NewDomainError("INVALID_MOVE_SIZE", "Move size must be one of studio, 1br, 2br, 3br, 4br, office")
	}
	crew, err := resolveCrew(size, crew)
	if err != nil {
		return err
	}

	q.Customer = customer
	q.Origin = origin
	q.Destination = destination
	q.MoveDate = shared.TruncateDay(moveDate)
	q.MoveSize = size
	q.Crew = crew
	q.Notes = strings.TrimSpace(notes)
	q.MarkModified()
	return nil
}

// SetNotes sets free text notes
func (q *Quote) SetNotes(notes string) {
	q.Notes = strings.TrimSpace(notes)
	q.MarkModified()
}

// SetReferrer links the quote to a referrer
func (q *Quote) SetReferrer(referrerID uuid.UUID, code string) {
	q.ReferrerID = &referrerID
	q.ReferrerCode = strings.ToUpper(strings.TrimSpace(code))
	q.MarkModified()
}

// MarkQuoted records that the price was sent to the customer
func (q *Quote) MarkQuoted() error {
	if q.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending quotes can be marked as quoted")
	}
	if q.TotalPrice.IsZero() && q.BasePrice.IsZero() {
		return shared.NewDomainError("NOT_PRICED", "Quote has not been priced")
	}
	now := time.Now()
	q.Status = StatusQuoted
	q.QuotedAt = &now
	q.MarkModified()
	return nil
}

// Book confirms a quoted move. The move date must not be in the past.
func (q *Quote) Book(today time.Time) error {
	if q.Status != StatusQuoted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot book a %s quote", q.Status))
	}
	if q.TotalPrice.IsZero() && q.BasePrice.IsZero() {
		return shared.NewDomainError("NOT_PRICED", "Quote has not been priced")
	}
	if q.MoveDate.Before(shared.TruncateDay(today)) {
		return shared.NewDomainError("MOVE_DATE_PASSED", "Cannot book a move date in the past")
	}
	now := time.Now()
	q.Status = StatusBooked
	q.BookedAt = &now
	q.MarkModified()

	q.AddDomainEvent(NewQuoteBookedEvent(q))
	return nil
}

// Complete marks a booked move as done
func (q *Quote) Complete() error {
	if q.Status != StatusBooked {
		return shared.NewDomainError("INVALID_STATE", "Only booked quotes can be completed")
	}
	now := time.Now()
	q.Status = StatusCompleted
	q.CompletedAt = &now
	q.MarkModified()

	q.AddDomainEvent(NewQuoteCompletedEvent(q))
	return nil
}

// Cancel cancels an open or booked quote
func (q *Quote) Cancel(reason string) error {
	if !q.Status.IsOpen() && q.Status != StatusBooked {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a %s quote", q.Status))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}
	wasBooked := q.Status == StatusBooked
	now := time.Now()
	q.Status = StatusCancelled
	q.CancelledAt = &now
	q.CancelReason = reason
	q.MarkModified()

	q.AddDomainEvent(NewQuoteCancelledEvent(q, wasBooked))
	return nil
}

// Expire closes an open quote the customer never booked
func (q *Quote) Expire() error {
	if !q.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot expire a %s quote", q.Status))
	}
	q.Status = StatusExpired
	q.MarkModified()

	q.AddDomainEvent(NewQuoteExpiredEvent(q))
	return nil
}

// CanDelete is only true for quotes nobody acted on yet
func (q *Quote) CanDelete() bool {
	return q.Status == StatusPending
}

// AddAttachment records an uploaded object key
func (q *Quote) AddAttachment(key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment key is required")
	}
	if len(q.Attachments) >= 10 {
		return shared.NewDomainError("TOO_MANY_ATTACHMENTS", "A quote can have at most 10 attachments")
	}
	for _, k := range q.Attachments {
		if k == key {
			return nil
		}
	}
	q.Attachments = append(q.Attachments, key)
	q.MarkModified()
	return nil
}

// HasAttachment reports whether key belongs to the quote
func (q *Quote) HasAttachment(key string) bool {
	for _, k := range q.Attachments {
		if k == key {
			return true
		}
	}
	return false
}

func resolveCrew(size MoveSize, crew Crew) (Crew, error) {
	est := size.Estimate()
	if crew.Size == 0 {
		crew.Size = est.CrewSize
	}
	if crew.TruckCount == 0 {
		crew.TruckCount = est.TruckCount
	}
	if crew.EstimatedHours.IsZero() {
		crew.EstimatedHours = est.Hours
	}
	if crew.Size < 1 || crew.Size > 20 {
		return Crew{}, shared.NewDomainError("INVALID_CREW", "Crew size must be between 1 and 20")
	}
	if crew.TruckCount < 1 || crew.TruckCount > 10 {
		return Crew{}, shared.NewDomainError("INVALID_CREW", "Truck count must be between 1 and 10")
	}
	if !crew.EstimatedHours.IsPositive() || crew.EstimatedHours.GreaterThan(decimal.NewFromInt(72)) {
		return Crew{}, shared.NewDomainError("INVALID_CREW", "Estimated hours must be between 0 and 72")
	}
	return crew, nil
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func normalizeCustomer(c Customer) Customer {
	return Customer{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.ToLower(strings.TrimSpace(c.Email)),
		Phone: strings.TrimSpace(c.Phone),
	}
}

func validateCustomer(c Customer) error {
	if c.Name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name is required")
	}
	if len(c.Name) > 200 {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot exceed 200 characters")
	}
	if c.Email == "" && c.Phone == "" {
		return shared.NewDomainError("INVALID_CUSTOMER", "Either email or phone is required")
	}
	if c.Email != "" && !emailRegex.MatchString(c.Email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	if len(c.Phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	return nil
}

func validateLocation(field string, l Location) error {
	if strings.TrimSpace(l.Street) == "" || strings.TrimSpace(l.City) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", fmt.Sprintf("The %s street and city are required", field))
	}
	return nil
}
