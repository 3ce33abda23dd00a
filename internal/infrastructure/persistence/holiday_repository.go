package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/pricing"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormHolidayRepository implements HolidayRepository using GORM
type GormHolidayRepository struct {
	db *gorm.DB
}

// NewGormHolidayRepository creates a new GormHolidayRepository
func NewGormHolidayRepository(db *gorm.DB) *GormHolidayRepository {
	return &GormHolidayRepository{db: db}
}

// FindByIDForCompany finds a holiday by ID within a company
func (r *GormHolidayRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*pricing.Holiday, error) {
	var model models.HolidayModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany lists holidays matching the filter
func (r *GormHolidayRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]pricing.Holiday, error) {
	var rows []models.HolidayModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.HolidayModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.
		Scopes(OrderScope(filter, HolidaySortFields, "date"), PaginateScope(filter)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toHolidays(rows), nil
}

// CountForCompany counts holidays matching the filter
func (r *GormHolidayRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.HolidayModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindForRange returns holidays dated within [from, to] plus every recurring holiday
func (r *GormHolidayRepository) FindForRange(ctx context.Context, companyID uuid.UUID, from, to time.Time) ([]pricing.Holiday, error) {
	var rows []models.HolidayModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("recurring_yearly = ? OR (date >= ? AND date <= ?)", true, shared.TruncateDay(from), shared.TruncateDay(to)).
		Order("date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toHolidays(rows), nil
}

// ExistsOnDate checks whether a holiday is already defined for the date
func (r *GormHolidayRepository) ExistsOnDate(ctx context.Context, companyID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.HolidayModel{}).
		Scopes(CompanyScope(companyID)).
		Where("date = ?", shared.TruncateDay(date)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a holiday
func (r *GormHolidayRepository) Save(ctx context.Context, holiday *pricing.Holiday) error {
	return r.db.WithContext(ctx).Save(models.HolidayModelFromDomain(holiday)).Error
}

// SaveBatch inserts holidays in one transaction
func (r *GormHolidayRepository) SaveBatch(ctx context.Context, holidays []*pricing.Holiday) error {
	if len(holidays) == 0 {
		return nil
	}
	rows := make([]*models.HolidayModel, len(holidays))
	for i, h := range holidays {
		rows[i] = models.HolidayModelFromDomain(h)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(rows, 100).Error
	})
}

// DeleteForCompany deletes a holiday within a company
func (r *GormHolidayRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.HolidayModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormHolidayRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Scopes(SearchScope(filter.Search, "name"))
	for key, value := range filter.Filters {
		switch key {
		case "from":
			query = query.Where("date >= ?", value)
		case "to":
			query = query.Where("date <= ?", value)
		case "recurring_yearly":
			query = query.Where("recurring_yearly = ?", value)
		}
	}
	return query
}

func toHolidays(rows []models.HolidayModel) []pricing.Holiday {
	holidays := make([]pricing.Holiday, len(rows))
	for i := range rows {
		holidays[i] = *rows[i].ToDomain()
	}
	return holidays
}

// Ensure GormHolidayRepository implements HolidayRepository
var _ pricing.HolidayRepository = (*GormHolidayRepository)(nil)
