package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/scheduling"
)

// ShiftModel is the persistence model for the Shift aggregate.
// Clock times are stored as minutes after midnight.
type ShiftModel struct {
	CompanyAggregateModel
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_shift_employee_date"`
	Date        time.Time  `gorm:"type:date;not null;index:idx_shift_employee_date"`
	StartMinute int        `gorm:"not null"`
	EndMinute   int        `gorm:"not null"`
	QuoteID     *uuid.UUID `gorm:"type:uuid;index"`
	Notes       string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ShiftModel) TableName() string {
	return "shifts"
}

// ToDomain converts the persistence model to a domain Shift.
func (m *ShiftModel) ToDomain() *scheduling.Shift {
	return &scheduling.Shift{
		CompanyAggregateRoot: m.ToCompanyAggregateRoot(),
		EmployeeID:           m.EmployeeID,
		Date:                 m.Date,
		Start:                scheduling.ClockTime(m.StartMinute),
		End:                  scheduling.ClockTime(m.EndMinute),
		QuoteID:              m.QuoteID,
		Notes:                m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Shift.
func (m *ShiftModel) FromDomain(s *scheduling.Shift) {
	m.FromDomainCompanyAggregateRoot(s.CompanyAggregateRoot)
	m.EmployeeID = s.EmployeeID
	m.Date = s.Date
	m.StartMinute = int(s.Start)
	m.EndMinute = int(s.End)
	m.QuoteID = s.QuoteID
	m.Notes = s.Notes
}

// ShiftModelFromDomain creates a new persistence model from a domain Shift.
func ShiftModelFromDomain(s *scheduling.Shift) *ShiftModel {
	m := &ShiftModel{}
	m.FromDomain(s)
	return m
}

// TruckAssignmentModel is the persistence model for TruckAssignment.
// A truck holds at most one assignment per date.
type TruckAssignmentModel struct {
	CompanyAggregateModel
	TruckID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_truck_assignment_truck_date"`
	QuoteID uuid.UUID `gorm:"type:uuid;not null;index"`
	Date    time.Time `gorm:"type:date;not null;uniqueIndex:idx_truck_assignment_truck_date"`
}

// TableName returns the table name for GORM
func (TruckAssignmentModel) TableName() string {
	return "truck_assignments"
}

// ToDomain converts the persistence model to a domain TruckAssignment.
func (m *TruckAssignmentModel) ToDomain() *scheduling.TruckAssignment {
	return &scheduling.TruckAssignment{
		CompanyAggregateRoot: m.ToCompanyAggregateRoot(),
		TruckID:              m.TruckID,
		QuoteID:              m.QuoteID,
		Date:                 m.Date,
	}
}

// FromDomain populates the persistence model from a domain TruckAssignment.
func (m *TruckAssignmentModel) FromDomain(a *scheduling.TruckAssignment) {
	m.FromDomainCompanyAggregateRoot(a.CompanyAggregateRoot)
	m.TruckID = a.TruckID
	m.QuoteID = a.QuoteID
	m.Date = a.Date
}

// TruckAssignmentModelFromDomain creates a new persistence model from a domain TruckAssignment.
func TruckAssignmentModelFromDomain(a *scheduling.TruckAssignment) *TruckAssignmentModel {
	m := &TruckAssignmentModel{}
	m.FromDomain(a)
	return m
}
