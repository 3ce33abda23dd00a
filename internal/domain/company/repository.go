package company

import (
	"context"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/shared"
)

// CompanyRepository persists companies
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByCode(ctx context.Context, code string) (*Company, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, c *Company) error
}

// ReferrerRepository persists referrers
type ReferrerRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Referrer, error)
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Referrer, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Referrer, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error)
	Save(ctx context.Context, r *Referrer) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}
