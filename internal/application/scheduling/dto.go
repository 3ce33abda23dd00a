package scheduling

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/scheduling"
)

const dateLayout = "2006-01-02"

// CreateShiftRequest represents a request to schedule a shift
type CreateShiftRequest struct {
	EmployeeID uuid.UUID  `json:"employee_id" binding:"required"`
	Date       string     `json:"date" binding:"required,datetime=2006-01-02"`
	Start      string     `json:"start" binding:"required,hhmm"`
	End        string     `json:"end" binding:"required,hhmm"`
	QuoteID    *uuid.UUID `json:"quote_id"`
	Notes      string     `json:"notes" binding:"max=1000"`
}

// ShiftListFilter narrows the shift listing
type ShiftListFilter struct {
	From       string `form:"from" binding:"required,datetime=2006-01-02"`
	To         string `form:"to" binding:"required,datetime=2006-01-02"`
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	QuoteID    string `form:"quote_id" binding:"omitempty,uuid"`
}

// AssignTruckRequest reserves one truck for a booked quote
type AssignTruckRequest struct {
	TruckID uuid.UUID `json:"truck_id" binding:"required"`
}

// ShiftResponse represents a shift in API responses
type ShiftResponse struct {
	ID           uuid.UUID       `json:"id"`
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	EmployeeRole string          `json:"employee_role,omitempty"`
	Date         string          `json:"date"`
	Start        string          `json:"start"`
	End          string          `json:"end"`
	Hours        decimal.Decimal `json:"hours"`
	QuoteID      *uuid.UUID      `json:"quote_id,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TruckAssignmentResponse represents a truck reserved for a move
type TruckAssignmentResponse struct {
	ID        uuid.UUID `json:"id"`
	TruckID   uuid.UUID `json:"truck_id"`
	TruckCode string    `json:"truck_code,omitempty"`
	TruckName string    `json:"truck_name,omitempty"`
	QuoteID   uuid.UUID `json:"quote_id"`
	Date      string    `json:"date"`
}

// MoveScheduleResponse is one booked move with its trucks and crew
type MoveScheduleResponse struct {
	QuoteID      uuid.UUID                 `json:"quote_id"`
	QuoteNumber  string                    `json:"quote_number"`
	CustomerName string                    `json:"customer_name"`
	Origin       string                    `json:"origin"`
	Destination  string                    `json:"destination"`
	Status       string                    `json:"status"`
	Trucks       []TruckAssignmentResponse `json:"trucks"`
	Crew         []ShiftResponse           `json:"crew"`
}

// DayScheduleResponse lists everything happening on one date
type DayScheduleResponse struct {
	Date        string                 `json:"date"`
	Moves       []MoveScheduleResponse `json:"moves"`
	OtherShifts []ShiftResponse        `json:"other_shifts"`
}

// AvailableTruck is a schedulable truck with no assignment on the date
type AvailableTruck struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	CapacityCuFt int       `json:"capacity_cu_ft"`
}

// AvailableEmployee is an active employee with no shift on the date
type AvailableEmployee struct {
	ID   uuid.UUID `json:"id"`
	Code string    `json:"code"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

// AvailabilityResponse lists free trucks and employees for a date
type AvailabilityResponse struct {
	Date      string              `json:"date"`
	Trucks    []AvailableTruck    `json:"trucks"`
	Employees []AvailableEmployee `json:"employees"`
}

// ToShiftResponse converts a domain Shift to ShiftResponse
func ToShiftResponse(s *scheduling.Shift) ShiftResponse {
	return ShiftResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Date:       s.Date.Format(dateLayout),
		Start:      s.Start.String(),
		End:        s.End.String(),
		Hours:      s.Hours(),
		QuoteID:    s.QuoteID,
		Notes:      s.Notes,
		CreatedAt:  s.CreatedAt,
	}
}

// ToTruckAssignmentResponse converts a domain TruckAssignment
func ToTruckAssignmentResponse(a *scheduling.TruckAssignment) TruckAssignmentResponse {
	return TruckAssignmentResponse{
		ID:      a.ID,
		TruckID: a.TruckID,
		QuoteID: a.QuoteID,
		Date:    a.Date.Format(dateLayout),
	}
}
