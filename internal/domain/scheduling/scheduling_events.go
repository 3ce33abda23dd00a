package scheduling

import (
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/shared"
)

const (
	AggregateTypeShift           = "Shift"
	AggregateTypeTruckAssignment = "TruckAssignment"
)

const (
	EventTypeShiftScheduled = "ShiftScheduled"
	EventTypeTruckAssigned  = "TruckAssigned"
)

// ShiftScheduledEvent is published when a shift is created
type ShiftScheduledEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       time.Time `json:"date"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
}

func NewShiftScheduledEvent(s *Shift) *ShiftScheduledEvent {
	return &ShiftScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShiftScheduled, AggregateTypeShift, s.ID, s.CompanyID),
		EmployeeID:      s.EmployeeID,
		Date:            s.Date,
		Start:           s.Start.String(),
		End:             s.End.String(),
	}
}

// TruckAssignedEvent is published when a truck is reserved for a move
type TruckAssignedEvent struct {
	shared.BaseDomainEvent
	TruckID uuid.UUID `json:"truck_id"`
	QuoteID uuid.UUID `json:"quote_id"`
	Date    time.Time `json:"date"`
}

func NewTruckAssignedEvent(a *TruckAssignment) *TruckAssignedEvent {
	return &TruckAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTruckAssigned, AggregateTypeTruckAssignment, a.ID, a.CompanyID),
		TruckID:         a.TruckID,
		QuoteID:         a.QuoteID,
		Date:            a.Date,
	}
}
