package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/shared"
)

// SeasonRuleRepository persists season rules
type SeasonRuleRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*SeasonRule, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]SeasonRule, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	// FindActiveForCompany returns every active rule, unpaginated
	FindActiveForCompany(ctx context.Context, companyID uuid.UUID) ([]SeasonRule, error)
	ExistsByName(ctx context.Context, companyID uuid.UUID, name string) (bool, error)
	Save(ctx context.Context, rule *SeasonRule) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}

// HolidayRepository persists company holidays
type HolidayRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Holiday, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Holiday, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	// FindForRange returns dated holidays within [from, to] plus all recurring ones
	FindForRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]Holiday, error)
	ExistsOnDate(ctx context.Context, companyID uuid.UUID, date time.Time) (bool, error)
	Save(ctx context.Context, holiday *Holiday) error
	SaveBatch(ctx context.Context, holidays []*Holiday) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}
