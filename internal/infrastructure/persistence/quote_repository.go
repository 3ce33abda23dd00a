package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/quote"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormQuoteRepository implements QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByIDForCompany finds a quote by ID within a company
func (r *GormQuoteRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*quote.Quote, error) {
	return r.findOne(ctx, r.db.WithContext(ctx).Scopes(CompanyScope(companyID)).Where("id = ?", id))
}

// FindByNumber finds a quote by its quote number within a company
func (r *GormQuoteRepository) FindByNumber(ctx context.Context, companyID uuid.UUID, number string) (*quote.Quote, error) {
	return r.findOne(ctx, r.db.WithContext(ctx).Scopes(CompanyScope(companyID)).Where("quote_number = ?", number))
}

func (r *GormQuoteRepository) findOne(_ context.Context, query *gorm.DB) (*quote.Quote, error) {
	var model models.QuoteModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany lists quotes matching the filter
func (r *GormQuoteRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]quote.Quote, error) {
	var rows []models.QuoteModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.QuoteModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.
		Scopes(OrderScope(filter, QuoteSortFields, "created_at"), PaginateScope(filter)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toQuotes(rows), nil
}

// CountForCompany counts quotes matching the filter
func (r *GormQuoteRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.QuoteModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns the number of quotes per status. Statuses with no
// quotes are present with a zero count.
func (r *GormQuoteRepository) CountByStatus(ctx context.Context, companyID uuid.UUID) (map[quote.Status]int64, error) {
	type statusCount struct {
		Status quote.Status
		Count  int64
	}
	var rows []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.QuoteModel{}).
		Select("status, COUNT(*) AS count").
		Scopes(CompanyScope(companyID)).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[quote.Status]int64, len(quote.AllStatuses))
	for _, s := range quote.AllStatuses {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// FindStale returns pending or quoted quotes created before cutoff
func (r *GormQuoteRepository) FindStale(ctx context.Context, cutoff time.Time, limit int) ([]quote.Quote, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []models.QuoteModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []quote.Status{quote.StatusPending, quote.StatusQuoted}).
		Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toQuotes(rows), nil
}

// Save creates or updates a quote
func (r *GormQuoteRepository) Save(ctx context.Context, q *quote.Quote) error {
	err := r.db.WithContext(ctx).Save(models.QuoteModelFromDomain(q)).Error
	if isDuplicateKey(r.db, err) {
		return quote.ErrQuoteNumberTaken
	}
	return err
}

// DeleteForCompany deletes a quote within a company
func (r *GormQuoteRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.QuoteModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormQuoteRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Scopes(SearchScope(filter.Search, "quote_number", "customer_name", "customer_email", "customer_phone"))
	for key, value := range filter.Filters {
		switch key {
		case quote.FilterStatus:
			query = query.Where("status = ?", value)
		case quote.FilterReferrerID:
			query = query.Where("referrer_id = ?", value)
		case quote.FilterMoveDateFrom:
			query = query.Where("move_date >= ?", value)
		case quote.FilterMoveDateTo:
			query = query.Where("move_date <= ?", value)
		}
	}
	return query
}

func toQuotes(rows []models.QuoteModel) []quote.Quote {
	quotes := make([]quote.Quote, len(rows))
	for i := range rows {
		quotes[i] = *rows[i].ToDomain()
	}
	return quotes
}

// Ensure GormQuoteRepository implements QuoteRepository
var _ quote.QuoteRepository = (*GormQuoteRepository)(nil)
