package scheduling

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/shared"
)

// Shift is one employee working one block of one day
type Shift struct {
	shared.CompanyAggregateRoot
	EmployeeID uuid.UUID
	Date       time.Time
	Start      ClockTime
	End        ClockTime
	QuoteID    *uuid.UUID
	Notes      string
}

// NewShift creates a shift; end must be after start on the same day
func NewShift(companyID, employeeID uuid.UUID, date time.Time, start, end ClockTime) (*Shift, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee is required")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Shift date is required")
	}
	if end <= start {
		return nil, shared.NewDomainError("INVALID_SHIFT_TIME", "Shift end must be after its start")
	}

	s := &Shift{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		EmployeeID:           employeeID,
		Date:                 shared.TruncateDay(date),
		Start:                start,
		End:                  end,
	}
	s.AddDomainEvent(NewShiftScheduledEvent(s))
	return s, nil
}

// AttachToQuote links the shift to a booked move
func (s *Shift) AttachToQuote(quoteID uuid.UUID) {
	s.QuoteID = &quoteID
	s.MarkModified()
}

// SetNotes sets notes
func (s *Shift) SetNotes(notes string) {
	s.Notes = strings.TrimSpace(notes)
	s.MarkModified()
}

// Overlaps reports whether two shifts of the same employee collide.
// Touching shifts (one ends when the next starts) do not overlap.
func (s *Shift) Overlaps(other *Shift) bool {
	if s.EmployeeID != other.EmployeeID || !s.Date.Equal(other.Date) {
		return false
	}
	return s.Start < other.End && other.Start < s.End
}

// Hours is the shift length
func (s *Shift) Hours() decimal.Decimal {
	return decimal.NewFromInt(int64(s.End - s.Start)).Div(decimal.NewFromInt(60)).Round(2)
}

// CheckNoOverlap returns a conflict error if candidate collides with any existing shift
func CheckNoOverlap(existing []Shift, candidate *Shift) error {
	for i := range existing {
		if existing[i].ID == candidate.ID {
			continue
		}
		if existing[i].Overlaps(candidate) {
			return shared.NewDomainError("SHIFT_OVERLAP",
				"Employee already has a shift from "+existing[i].Start.String()+" to "+existing[i].End.String()+" on that day")
		}
	}
	return nil
}
