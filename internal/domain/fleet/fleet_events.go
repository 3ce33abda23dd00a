package fleet

import "github.com/syncworks/backend/internal/domain/shared"

const (
	AggregateTypeTruck    = "Truck"
	AggregateTypeEmployee = "Employee"
)

const (
	EventTypeTruckStatusChanged  = "TruckStatusChanged"
	EventTypeEmployeeDeactivated = "EmployeeDeactivated"
)

// TruckStatusChangedEvent is published on every truck status change,
// including creation (OldStatus empty)
type TruckStatusChangedEvent struct {
	shared.BaseDomainEvent
	Code      string      `json:"code"`
	OldStatus TruckStatus `json:"old_status,omitempty"`
	NewStatus TruckStatus `json:"new_status"`
}

func NewTruckStatusChangedEvent(t *Truck, old TruckStatus) *TruckStatusChangedEvent {
	return &TruckStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTruckStatusChanged, AggregateTypeTruck, t.ID, t.CompanyID),
		Code:            t.Code,
		OldStatus:       old,
		NewStatus:       t.Status,
	}
}

// EmployeeDeactivatedEvent is published when an employee leaves the roster
type EmployeeDeactivatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
}

func NewEmployeeDeactivatedEvent(e *Employee) *EmployeeDeactivatedEvent {
	return &EmployeeDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEmployeeDeactivated, AggregateTypeEmployee, e.ID, e.CompanyID),
		Code:            e.Code,
	}
}
