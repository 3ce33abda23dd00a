package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/pricing"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSeasonRuleRepository implements SeasonRuleRepository using GORM
type GormSeasonRuleRepository struct {
	db *gorm.DB
}

// NewGormSeasonRuleRepository creates a new GormSeasonRuleRepository
func NewGormSeasonRuleRepository(db *gorm.DB) *GormSeasonRuleRepository {
	return &GormSeasonRuleRepository{db: db}
}

// FindByIDForCompany finds a rule by ID within a company
func (r *GormSeasonRuleRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*pricing.SeasonRule, error) {
	var model models.SeasonRuleModel
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

// FindAllForCompany lists rules matching the filter
func (r *GormSeasonRuleRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]pricing.SeasonRule, error) {
	var rows []models.SeasonRuleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SeasonRuleModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.
		Scopes(OrderScope(filter, SeasonRuleSortFields, "priority"), PaginateScope(filter)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSeasonRules(rows), nil
}

// CountForCompany counts rules matching the filter
func (r *GormSeasonRuleRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SeasonRuleModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindActiveForCompany returns all active rules in resolution order
func (r *GormSeasonRuleRepository) FindActiveForCompany(ctx context.Context, companyID uuid.UUID) ([]pricing.SeasonRule, error) {
	var rows []models.SeasonRuleModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("is_active = ?", true).
		Order("priority DESC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toSeasonRules(rows), nil
}

// ExistsByName checks for a rule with the same name, ignoring case
func (r *GormSeasonRuleRepository) ExistsByName(ctx context.Context, companyID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SeasonRuleModel{}).
		Scopes(CompanyScope(companyID)).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a rule
func (r *GormSeasonRuleRepository) Save(ctx context.Context, rule *pricing.SeasonRule) error {
	return r.db.WithContext(ctx).Save(models.SeasonRuleModelFromDomain(rule)).Error
}

// DeleteForCompany deletes a rule within a company
func (r *GormSeasonRuleRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SeasonRuleModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormSeasonRuleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Scopes(SearchScope(filter.Search, "name", "description"))
	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "recurrence":
			query = query.Where("recurrence = ?", value)
		case "adjustment_type":
			query = query.Where("adjustment_type = ?", value)
		}
	}
	return query
}

func toSeasonRules(rows []models.SeasonRuleModel) []pricing.SeasonRule {
	rules := make([]pricing.SeasonRule, len(rows))
	for i := range rows {
		rules[i] = *rows[i].ToDomain()
	}
	return rules
}

// Ensure GormSeasonRuleRepository implements SeasonRuleRepository
var _ pricing.SeasonRuleRepository = (*GormSeasonRuleRepository)(nil)
