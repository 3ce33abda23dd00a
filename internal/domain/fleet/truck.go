package fleet

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/shared"
)

// TruckStatus represents the status of a truck
type TruckStatus string

const (
	TruckStatusActive      TruckStatus = "active"
	TruckStatusMaintenance TruckStatus = "maintenance"
	TruckStatusRetired     TruckStatus = "retired"
)

// IsValid returns true if the status is known
func (s TruckStatus) IsValid() bool {
	switch s {
	case TruckStatusActive, TruckStatusMaintenance, TruckStatusRetired:
		return true
	}
	return false
}

// Truck is a moving truck in the company fleet
type Truck struct {
	shared.CompanyAggregateRoot
	Code         string
	Name         string
	LicensePlate string
	CapacityCuFt int
	Status       TruckStatus
	Notes        string
}

var codeRegex = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// NewTruck creates an active truck
func NewTruck(companyID uuid.UUID, code, name string) (*Truck, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validateCode(code); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	t := &Truck{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 code,
		Name:                 name,
		Status:               TruckStatusActive,
	}
	t.AddDomainEvent(NewTruckStatusChangedEvent(t, ""))
	return t, nil
}

// Update sets descriptive fields
func (t *Truck) Update(name, plate string, capacity int, notes string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	if capacity < 0 || capacity > 5000 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity must be between 0 and 5000 cubic feet")
	}
	if len(plate) > 20 {
		return shared.NewDomainError("INVALID_PLATE", "License plate cannot exceed 20 characters")
	}
	t.Name = name
	t.LicensePlate = strings.ToUpper(strings.TrimSpace(plate))
	t.CapacityCuFt = capacity
	t.Notes = notes
	t.MarkModified()
	return nil
}

// SendToMaintenance takes the truck out of service
func (t *Truck) SendToMaintenance() error {
	if t.Status != TruckStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active trucks can go to maintenance")
	}
	return t.setStatus(TruckStatusMaintenance)
}

// ReturnToService brings a truck back from maintenance
func (t *Truck) ReturnToService() error {
	if t.Status != TruckStatusMaintenance {
		return shared.NewDomainError("INVALID_STATE", "Only trucks in maintenance can return to service")
	}
	return t.setStatus(TruckStatusActive)
}

// Retire permanently removes the truck from scheduling
func (t *Truck) Retire() error {
	if t.Status == TruckStatusRetired {
		return shared.NewDomainError("INVALID_STATE", "Truck is already retired")
	}
	return t.setStatus(TruckStatusRetired)
}

// IsSchedulable is true for trucks that can be assigned to moves
func (t *Truck) IsSchedulable() bool {
	return t.Status == TruckStatusActive
}

func (t *Truck) setStatus(status TruckStatus) error {
	old := t.Status
	t.Status = status
	t.MarkModified()
	t.AddDomainEvent(NewTruckStatusChangedEvent(t, old))
	return nil
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	if !codeRegex.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "Code can only contain letters, numbers, underscores, and hyphens")
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
