package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ShiftFilter narrows shift queries
type ShiftFilter struct {
	From       time.Time
	To         time.Time
	EmployeeID *uuid.UUID
	QuoteID    *uuid.UUID
}

// ShiftRepository persists shifts
type ShiftRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Shift, error)
	Find(ctx context.Context, companyID uuid.UUID, filter ShiftFilter) ([]Shift, error)
	FindForEmployeeOnDate(ctx context.Context, companyID, employeeID uuid.UUID, date time.Time) ([]Shift, error)
	Save(ctx context.Context, shift *Shift) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
	// DetachQuote clears the quote link on every shift of a quote
	DetachQuote(ctx context.Context, companyID, quoteID uuid.UUID) (int64, error)
}

// TruckAssignmentRepository persists truck reservations
type TruckAssignmentRepository interface {
	FindOnDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]TruckAssignment, error)
	FindForQuote(ctx context.Context, companyID, quoteID uuid.UUID) ([]TruckAssignment, error)
	ExistsForTruckOnDate(ctx context.Context, companyID, truckID uuid.UUID, date time.Time) (bool, error)
	Save(ctx context.Context, a *TruckAssignment) error
	Delete(ctx context.Context, companyID, truckID, quoteID uuid.UUID) error
	DeleteForQuote(ctx context.Context, companyID, quoteID uuid.UUID) (int64, error)
}
