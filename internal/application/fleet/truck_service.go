package fleet

import (
	"context"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/shared"
)

// TruckService manages the truck fleet
type TruckService struct {
	truckRepo fleet.TruckRepository
	publisher shared.EventPublisher
}

// NewTruckService creates a new TruckService
func NewTruckService(truckRepo fleet.TruckRepository, publisher shared.EventPublisher) *TruckService {
	return &TruckService{truckRepo: truckRepo, publisher: publisher}
}

// Create adds a truck
func (s *TruckService) Create(ctx context.Context, companyID uuid.UUID, req CreateTruckRequest) (*TruckResponse, error) {
	truck, err := fleet.NewTruck(companyID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	exists, err := s.truckRepo.ExistsByCode(ctx, companyID, truck.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Truck with this code already exists")
	}
	if err := truck.Update(truck.Name, req.LicensePlate, req.CapacityCuFt, req.Notes); err != nil {
		return nil, err
	}

	if err := s.save(ctx, truck); err != nil {
		return nil, err
	}
	resp := ToTruckResponse(truck)
	return &resp, nil
}

// GetByID returns a truck
func (s *TruckService) GetByID(ctx context.Context, companyID, id uuid.UUID) (*TruckResponse, error) {
	truck, err := s.truckRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	resp := ToTruckResponse(truck)
	return &resp, nil
}

// List returns a page of trucks
func (s *TruckService) List(ctx context.Context, companyID uuid.UUID, filter ListFilter) ([]TruckResponse, int64, error) {
	domainFilter := toDomainFilter(filter, "code")
	trucks, err := s.truckRepo.FindAllForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.truckRepo.CountForCompany(ctx, companyID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToTruckResponses(trucks), total, nil
}

// Update changes descriptive fields; omitted fields keep their value
func (s *TruckService) Update(ctx context.Context, companyID, id uuid.UUID, req UpdateTruckRequest) (*TruckResponse, error) {
	truck, err := s.truckRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	name, plate, capacity, notes := truck.Name, truck.LicensePlate, truck.CapacityCuFt, truck.Notes
	if req.Name != nil {
		name = *req.Name
	}
	if req.LicensePlate != nil {
		plate = *req.LicensePlate
	}
	if req.CapacityCuFt != nil {
		capacity = *req.CapacityCuFt
	}
	if req.Notes != nil {
		notes = *req.Notes
	}
	if err := truck.Update(name, plate, capacity, notes); err != nil {
		return nil, err
	}

	if err := s.save(ctx, truck); err != nil {
		return nil, err
	}
	resp := ToTruckResponse(truck)
	return &resp, nil
}

// ChangeStatus moves a truck between active, maintenance and retired.
// Retired trucks cannot come back.
func (s *TruckService) ChangeStatus(ctx context.Context, companyID, id uuid.UUID, req TruckStatusRequest) (*TruckResponse, error) {
	truck, err := s.truckRepo.FindByIDForCompany(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	switch fleet.TruckStatus(req.Status) {
	case fleet.TruckStatusMaintenance:
		err = truck.SendToMaintenance()
	case fleet.TruckStatusActive:
		err = truck.ReturnToService()
	case fleet.TruckStatusRetired:
		err = truck.Retire()
	default:
		err = shared.NewDomainError("INVALID_STATUS", "Status must be active, maintenance or retired")
	}
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, truck); err != nil {
		return nil, err
	}
	resp := ToTruckResponse(truck)
	return &resp, nil
}

// Delete removes a truck
func (s *TruckService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	return s.truckRepo.DeleteForCompany(ctx, companyID, id)
}

func (s *TruckService) save(ctx context.Context, truck *fleet.Truck) error {
	if err := s.truckRepo.Save(ctx, truck); err != nil {
		return err
	}
	return shared.PublishAndClear(ctx, s.publisher, truck)
}

func toDomainFilter(filter ListFilter, defaultOrder string) shared.Filter {
	f := shared.DefaultFilter()
	f.Search = filter.Search
	f.OrderBy = defaultOrder
	f.OrderDir = "asc"
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.Role != "" {
		f.Filters["role"] = filter.Role
	}
	return f
}
