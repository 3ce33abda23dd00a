package fleet

import (
	"context"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/shared"
)

// TruckRepository persists trucks
type TruckRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Truck, error)
	FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]Truck, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Truck, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	FindSchedulable(ctx context.Context, companyID uuid.UUID) ([]Truck, error)
	ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, truck *Truck) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}

// EmployeeRepository persists employees
type EmployeeRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Employee, error)
	FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]Employee, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Employee, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	FindSchedulable(ctx context.Context, companyID uuid.UUID) ([]Employee, error)
	ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, employee *Employee) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}
