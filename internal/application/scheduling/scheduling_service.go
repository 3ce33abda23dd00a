package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/scheduling"
	"github.com/syncworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SchedulingService places employees and trucks on moves
type SchedulingService struct {
	shiftRepo      scheduling.ShiftRepository
	assignmentRepo scheduling.TruckAssignmentRepository
	truckRepo      fleet.TruckRepository
	employeeRepo   fleet.EmployeeRepository
	quoteRepo      quote.QuoteRepository
	publisher      shared.EventPublisher
	logger         *zap.Logger
}

// NewSchedulingService creates a new SchedulingService
func NewSchedulingService(
	shiftRepo scheduling.ShiftRepository,
	assignmentRepo scheduling.TruckAssignmentRepository,
	truckRepo fleet.TruckRepository,
	employeeRepo fleet.EmployeeRepository,
	quoteRepo quote.QuoteRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *SchedulingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchedulingService{
		shiftRepo:      shiftRepo,
		assignmentRepo: assignmentRepo,
		truckRepo:      truckRepo,
		employeeRepo:   employeeRepo,
		quoteRepo:      quoteRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// CreateShift schedules an employee. Inactive employees cannot be
// scheduled and shifts of one employee may not overlap on a date.
func (s *SchedulingService) CreateShift(ctx context.Context, companyID uuid.UUID, req CreateShiftRequest) (*ShiftResponse, error) {
	date, err := parseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	start, err := scheduling.ParseClock(req.Start)
	if err != nil {
		return nil, err
	}
	end, err := scheduling.ParseClock(req.End)
	if err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.FindByIDForCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if !emp.IsSchedulable() {
		return nil, shared.NewDomainError("EMPLOYEE_INACTIVE", "Inactive employees cannot be scheduled")
	}

	shift, err := scheduling.NewShift(companyID, emp.ID, date, start, end)
	if err != nil {
		return nil, err
	}
	shift.SetNotes(req.Notes)
	if req.QuoteID != nil {
		q, err := s.quoteRepo.FindByIDForCompany(ctx, companyID, *req.QuoteID)
		if err != nil {
			return nil, err
		}
		if !q.MoveDate.Equal(shift.Date) {
			return nil, shared.NewDomainError("DATE_MISMATCH", "Shift date must match the move date of the quote")
		}
		shift.AttachToQuote(q.ID)
	}

	existing, err := s.shiftRepo.FindForEmployeeOnDate(ctx, companyID, emp.ID, shift.Date)
	if err != nil {
		return nil, err
	}
	if err := scheduling.CheckNoOverlap(existing, shift); err != nil {
		return nil, err
	}

	if err := s.shiftRepo.Save(ctx, shift); err != nil {
		return nil, err
	}
	if err := shared.PublishAndClear(ctx, s.publisher, shift); err != nil {
		return nil, err
	}

	resp := ToShiftResponse(shift)
	resp.EmployeeName = emp.Name
	resp.EmployeeRole = string(emp.Role)
	return &resp, nil
}

// ListShifts returns shifts in a date range, optionally for one employee or move
func (s *SchedulingService) ListShifts(ctx context.Context, companyID uuid.UUID, filter ShiftListFilter) ([]ShiftResponse, error) {
	from, err := parseDate("from", filter.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("to", filter.To)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "to must not be before from")
	}

	domainFilter := scheduling.ShiftFilter{From: from, To: to}
	if filter.EmployeeID != "" {
		id, err := uuid.Parse(filter.EmployeeID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ID", "employee_id must be a UUID")
		}
		domainFilter.EmployeeID = &id
	}
	if filter.QuoteID != "" {
		id, err := uuid.Parse(filter.QuoteID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_ID", "quote_id must be a UUID")
		}
		domainFilter.QuoteID = &id
	}

	shifts, err := s.shiftRepo.Find(ctx, companyID, domainFilter)
	if err != nil {
		return nil, err
	}
	return s.shiftResponses(ctx, companyID, shifts)
}

// DeleteShift removes a shift
func (s *SchedulingService) DeleteShift(ctx context.Context, companyID, id uuid.UUID) error {
	return s.shiftRepo.DeleteForCompany(ctx, companyID, id)
}

// shiftResponses converts shifts and fills in employee names
func (s *SchedulingService) shiftResponses(ctx context.Context, companyID uuid.UUID, shifts []scheduling.Shift) ([]ShiftResponse, error) {
	out := make([]ShiftResponse, len(shifts))
	if len(shifts) == 0 {
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(shifts))
	seen := make(map[uuid.UUID]bool, len(shifts))
	for i := range shifts {
		if !seen[shifts[i].EmployeeID] {
			seen[shifts[i].EmployeeID] = true
			ids = append(ids, shifts[i].EmployeeID)
		}
	}
	employees, err := s.employeeRepo.FindByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*fleet.Employee, len(employees))
	for i := range employees {
		byID[employees[i].ID] = &employees[i]
	}

	for i := range shifts {
		out[i] = ToShiftResponse(&shifts[i])
		if emp, ok := byID[shifts[i].EmployeeID]; ok {
			out[i].EmployeeName = emp.Name
			out[i].EmployeeRole = string(emp.Role)
		}
	}
	return out, nil
}

func parseDate(field, value string) (time.Time, error) {
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", field+" must be a date in YYYY-MM-DD format")
	}
	return d, nil
}
