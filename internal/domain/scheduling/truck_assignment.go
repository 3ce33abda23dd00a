package scheduling

import (
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/shared"
)

// TruckAssignment reserves a truck for a booked move on its move date.
// A truck can hold one assignment per day.
type TruckAssignment struct {
	shared.CompanyAggregateRoot
	TruckID uuid.UUID
	QuoteID uuid.UUID
	Date    time.Time
}

// NewTruckAssignment creates an assignment
func NewTruckAssignment(companyID, truckID, quoteID uuid.UUID, date time.Time) (*TruckAssignment, error) {
	if truckID == uuid.Nil || quoteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ASSIGNMENT", "Truck and quote are required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Assignment date is required")
	}
	a := &TruckAssignment{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		TruckID:              truckID,
		QuoteID:              quoteID,
		Date:                 shared.TruncateDay(date),
	}
	a.AddDomainEvent(NewTruckAssignedEvent(a))
	return a, nil
}
