package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/company"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a company by its code
func (r *GormCompanyRepository) FindByCode(ctx context.Context, code string) (*company.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToLower(strings.TrimSpace(code))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists companies matching the filter
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]company.Company, error) {
	var rows []models.CompanyModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CompanyModel{}), filter)
	if err := query.
		Scopes(OrderScope(filter, CompanySortFields, "name"), PaginateScope(filter)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	companies := make([]company.Company, len(rows))
	for i := range rows {
		companies[i] = *rows[i].ToDomain()
	}
	return companies, nil
}

// Count counts companies matching the filter
func (r *GormCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.CompanyModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a company code is taken
func (r *GormCompanyRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CompanyModel{}).
		Where("code = ?", strings.ToLower(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, c *company.Company) error {
	return r.db.WithContext(ctx).Save(models.CompanyModelFromDomain(c)).Error
}

func (r *GormCompanyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Scopes(SearchScope(filter.Search, "code", "name", "contact_email"))
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// GormReferrerRepository implements ReferrerRepository using GORM
type GormReferrerRepository struct {
	db *gorm.DB
}

// NewGormReferrerRepository creates a new GormReferrerRepository
func NewGormReferrerRepository(db *gorm.DB) *GormReferrerRepository {
	return &GormReferrerRepository{db: db}
}

// FindByIDForCompany finds a referrer by ID within a company
func (r *GormReferrerRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*company.Referrer, error) {
	var model models.ReferrerModel
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

// FindByCode finds a referrer by referral code within a company
func (r *GormReferrerRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*company.Referrer, error) {
	var model models.ReferrerModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("referral_code = ?", company.NormalizeReferralCode(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCompany lists referrers matching the filter
func (r *GormReferrerRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]company.Referrer, error) {
	var rows []models.ReferrerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReferrerModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.
		Scopes(OrderScope(filter, ReferrerSortFields, "name"), PaginateScope(filter)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	referrers := make([]company.Referrer, len(rows))
	for i := range rows {
		referrers[i] = *rows[i].ToDomain()
	}
	return referrers, nil
}

// CountForCompany counts referrers matching the filter
func (r *GormReferrerRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReferrerModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode checks if a referral code is taken within a company
func (r *GormReferrerRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReferrerModel{}).
		Scopes(CompanyScope(companyID)).
		Where("referral_code = ?", company.NormalizeReferralCode(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a referrer
func (r *GormReferrerRepository) Save(ctx context.Context, ref *company.Referrer) error {
	return r.db.WithContext(ctx).Save(models.ReferrerModelFromDomain(ref)).Error
}

// DeleteForCompany deletes a referrer within a company
func (r *GormReferrerRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ReferrerModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormReferrerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Scopes(SearchScope(filter.Search, "name", "email", "referral_code"))
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

// Ensure the GORM repositories implement the company interfaces
var (
	_ company.CompanyRepository  = (*GormCompanyRepository)(nil)
	_ company.ReferrerRepository = (*GormReferrerRepository)(nil)
)
