package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/scheduling"
	"github.com/syncworks/backend/internal/domain/shared"
)

// AssignTrucks reserves trucks for a quote on its move date. It is called
// while a quote is being booked, so the quote's status is not checked here.
// Trucks already reserved for the same quote are left as they are.
func (s *SchedulingService) AssignTrucks(ctx context.Context, companyID, quoteID uuid.UUID, day time.Time, truckIDs []uuid.UUID) error {
	ids := dedupe(truckIDs)
	if len(ids) == 0 {
		return nil
	}
	day = shared.TruncateDay(day)

	trucks, err := s.truckRepo.FindByIDs(ctx, companyID, ids)
	if err != nil {
		return err
	}
	if len(trucks) != len(ids) {
		return shared.NewDomainError("TRUCK_NOT_FOUND", "One or more trucks do not exist")
	}

	taken, err := s.assignmentsByTruck(ctx, companyID, day)
	if err != nil {
		return err
	}

	pending := make([]*scheduling.TruckAssignment, 0, len(trucks))
	for i := range trucks {
		t := &trucks[i]
		if err := checkTruckFree(t, taken, quoteID); err != nil {
			return err
		}
		if owner, ok := taken[t.ID]; ok && owner == quoteID {
			continue
		}
		a, err := scheduling.NewTruckAssignment(companyID, t.ID, quoteID, day)
		if err != nil {
			return err
		}
		pending = append(pending, a)
	}

	for _, a := range pending {
		if err := s.saveAssignment(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// AssignTruck reserves one truck for an already booked quote
func (s *SchedulingService) AssignTruck(ctx context.Context, companyID, quoteID uuid.UUID, req AssignTruckRequest) (*TruckAssignmentResponse, error) {
	q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	if q.Status != quote.StatusBooked {
		return nil, shared.NewDomainError("QUOTE_NOT_BOOKED", "Trucks can only be assigned to booked quotes")
	}
	truck, err := s.truckRepo.FindByIDForCompany(ctx, companyID, req.TruckID)
	if err != nil {
		return nil, err
	}

	taken, err := s.assignmentsByTruck(ctx, companyID, q.MoveDate)
	if err != nil {
		return nil, err
	}
	if owner, ok := taken[truck.ID]; ok && owner == q.ID {
		return nil, shared.NewDomainError("ALREADY_ASSIGNED", "Truck is already assigned to this quote")
	}
	if err := checkTruckFree(truck, taken, q.ID); err != nil {
		return nil, err
	}

	a, err := scheduling.NewTruckAssignment(companyID, truck.ID, q.ID, q.MoveDate)
	if err != nil {
		return nil, err
	}
	if err := s.saveAssignment(ctx, a); err != nil {
		return nil, err
	}

	resp := ToTruckAssignmentResponse(a)
	resp.TruckCode = truck.Code
	resp.TruckName = truck.Name
	return &resp, nil
}

// UnassignTruck releases a truck from a quote
func (s *SchedulingService) UnassignTruck(ctx context.Context, companyID, quoteID, truckID uuid.UUID) error {
	return s.assignmentRepo.Delete(ctx, companyID, truckID, quoteID)
}

// ListAssignments returns the trucks reserved for a quote
func (s *SchedulingService) ListAssignments(ctx context.Context, companyID, quoteID uuid.UUID) ([]TruckAssignmentResponse, error) {
	assignments, err := s.assignmentRepo.FindForQuote(ctx, companyID, quoteID)
	if err != nil {
		return nil, err
	}
	return s.assignmentResponses(ctx, companyID, assignments)
}

// ReleaseQuote drops every truck reservation and crew link of a quote
func (s *SchedulingService) ReleaseQuote(ctx context.Context, companyID, quoteID uuid.UUID) (int64, int64, error) {
	trucks, err := s.assignmentRepo.DeleteForQuote(ctx, companyID, quoteID)
	if err != nil {
		return 0, 0, fmt.Errorf("release truck assignments: %w", err)
	}
	shifts, err := s.shiftRepo.DetachQuote(ctx, companyID, quoteID)
	if err != nil {
		return trucks, 0, fmt.Errorf("detach shifts: %w", err)
	}
	return trucks, shifts, nil
}

func (s *SchedulingService) assignmentsByTruck(ctx context.Context, companyID uuid.UUID, day time.Time) (map[uuid.UUID]uuid.UUID, error) {
	assignments, err := s.assignmentRepo.FindOnDate(ctx, companyID, shared.TruncateDay(day))
	if err != nil {
		return nil, err
	}
	taken := make(map[uuid.UUID]uuid.UUID, len(assignments))
	for _, a := range assignments {
		taken[a.TruckID] = a.QuoteID
	}
	return taken, nil
}

func (s *SchedulingService) assignmentResponses(ctx context.Context, companyID uuid.UUID, assignments []scheduling.TruckAssignment) ([]TruckAssignmentResponse, error) {
	out := make([]TruckAssignmentResponse, len(assignments))
	if len(assignments) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, len(assignments))
	for i := range assignments {
		ids[i] = assignments[i].TruckID
	}
	trucks, err := s.truckRepo.FindByIDs(ctx, companyID, dedupe(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*fleet.Truck, len(trucks))
	for i := range trucks {
		byID[trucks[i].ID] = &trucks[i]
	}
	for i := range assignments {
		out[i] = ToTruckAssignmentResponse(&assignments[i])
		if t, ok := byID[assignments[i].TruckID]; ok {
			out[i].TruckCode = t.Code
			out[i].TruckName = t.Name
		}
	}
	return out, nil
}

func (s *SchedulingService) saveAssignment(ctx context.Context, a *scheduling.TruckAssignment) error {
	if err := s.assignmentRepo.Save(ctx, a); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, a)
}

func checkTruckFree(t *fleet.Truck, taken map[uuid.UUID]uuid.UUID, quoteID uuid.UUID) error {
	if !t.IsSchedulable() {
		return shared.NewDomainError("TRUCK_UNAVAILABLE", fmt.Sprintf("Truck %s is %s", t.Code, t.Status))
	}
	if owner, ok := taken[t.ID]; ok && owner != quoteID {
		return shared.NewDomainError("TRUCK_ALREADY_ASSIGNED", fmt.Sprintf("Truck %s is already booked on that date", t.Code))
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
