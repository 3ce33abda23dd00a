package scheduling

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/scheduling"
	"github.com/syncworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DaySchedule returns the moves of a date with their trucks and crews.
// Shifts not linked to a move on that date are listed separately.
func (s *SchedulingService) DaySchedule(ctx context.Context, companyID uuid.UUID, date string) (*DayScheduleResponse, error) {
	day, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.FindOnDate(ctx, companyID, day)
	if err != nil {
		return nil, err
	}
	shifts, err := s.shiftRepo.Find(ctx, companyID, scheduling.ShiftFilter{From: day, To: day})
	if err != nil {
		return nil, err
	}

	trucks, err := s.assignmentResponses(ctx, companyID, assignments)
	if err != nil {
		return nil, err
	}
	crew, err := s.shiftResponses(ctx, companyID, shifts)
	if err != nil {
		return nil, err
	}

	moves := make(map[uuid.UUID]*MoveScheduleResponse)
	order := make([]uuid.UUID, 0)
	move := func(quoteID uuid.UUID) *MoveScheduleResponse {
		if m, ok := moves[quoteID]; ok {
			return m
		}
		m := &MoveScheduleResponse{QuoteID: quoteID, Trucks: []TruckAssignmentResponse{}, Crew: []ShiftResponse{}}
		moves[quoteID] = m
		order = append(order, quoteID)
		return m
	}

	for _, t := range trucks {
		m := move(t.QuoteID)
		m.Trucks = append(m.Trucks, t)
	}
	others := make([]ShiftResponse, 0)
	for _, c := range crew {
		if c.QuoteID == nil {
			others = append(others, c)
			continue
		}
		m := move(*c.QuoteID)
		m.Crew = append(m.Crew, c)
	}

	out := &DayScheduleResponse{Date: day.Format(dateLayout), Moves: make([]MoveScheduleResponse, 0, len(order)), OtherShifts: others}
	for _, id := range order {
		m := moves[id]
		q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				s.logger.Warn("day schedule references a missing quote", zap.String("quote_id", id.String()))
				continue
			}
			return nil, err
		}
		m.QuoteNumber = q.QuoteNumber
		m.CustomerName = q.Customer.Name
		m.Origin = q.Origin.String()
		m.Destination = q.Destination.String()
		m.Status = string(q.Status)
		out.Moves = append(out.Moves, *m)
	}
	sort.SliceStable(out.Moves, func(i, j int) bool {
		return out.Moves[i].QuoteNumber < out.Moves[j].QuoteNumber
	})
	return out, nil
}

// Availability lists the trucks without an assignment and the active
// employees without a shift on a date
func (s *SchedulingService) Availability(ctx context.Context, companyID uuid.UUID, date string) (*AvailabilityResponse, error) {
	day, err := parseDate("date", date)
	if err != nil {
		return nil, err
	}

	taken, err := s.assignmentsByTruck(ctx, companyID, day)
	if err != nil {
		return nil, err
	}
	shifts, err := s.shiftRepo.Find(ctx, companyID, scheduling.ShiftFilter{From: day, To: day})
	if err != nil {
		return nil, err
	}
	working := make(map[uuid.UUID]bool, len(shifts))
	for i := range shifts {
		working[shifts[i].EmployeeID] = true
	}

	trucks, err := s.truckRepo.FindSchedulable(ctx, companyID)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeRepo.FindSchedulable(ctx, companyID)
	if err != nil {
		return nil, err
	}

	out := &AvailabilityResponse{
		Date:      day.Format(dateLayout),
		Trucks:    make([]AvailableTruck, 0, len(trucks)),
		Employees: make([]AvailableEmployee, 0, len(employees)),
	}
	for _, t := range trucks {
		if _, busy := taken[t.ID]; busy {
			continue
		}
		out.Trucks = append(out.Trucks, AvailableTruck{ID: t.ID, Code: t.Code, Name: t.Name, CapacityCuFt: t.CapacityCuFt})
	}
	for _, e := range employees {
		if working[e.ID] {
			continue
		}
		out.Employees = append(out.Employees, AvailableEmployee{ID: e.ID, Code: e.Code, Name: e.Name, Role: string(e.Role)})
	}
	return out, nil
}
