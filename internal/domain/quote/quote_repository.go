package quote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/shared"
)

// Filter keys understood by QuoteRepository
const (
	FilterStatus       = "status"
	FilterReferrerID   = "referrer_id"
	FilterMoveDateFrom = "move_date_from"
	FilterMoveDateTo   = "move_date_to"
)

// QuoteRepository persists quotes
type QuoteRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Quote, error)
	FindByNumber(ctx context.Context, companyID uuid.UUID, number string) (*Quote, error)
	FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Quote, error)
	CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, companyID uuid.UUID) (map[Status]int64, error)
	// FindStale returns open quotes of any company created before cutoff
	FindStale(ctx context.Context, cutoff time.Time, limit int) ([]Quote, error)
	Save(ctx context.Context, q *Quote) error
	DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error
}
