package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/fleet"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTruckRepository implements TruckRepository using GORM
type GormTruckRepository struct {
	db *gorm.DB
}

// NewGormTruckRepository creates a new GormTruckRepository
func NewGormTruckRepository(db *gorm.DB) *GormTruckRepository {
	return &GormTruckRepository{db: db}
}

// FindByIDForCompany finds a truck by ID within a company
func (r *GormTruckRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*fleet.Truck, error) {
	var model models.TruckModel
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

// FindByIDs loads the trucks with the given IDs; unknown IDs are ignored
func (r *GormTruckRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]fleet.Truck, error) {
	if len(ids) == 0 {
		return []fleet.Truck{}, nil
	}
	var rows []models.TruckModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("id IN ?", ids).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTrucks(rows), nil
}

// FindAllForCompany lists trucks matching the filter
func (r *GormTruckRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]fleet.Truck, error) {
	var rows []models.TruckModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TruckModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.
		Scopes(OrderScope(filter, TruckSortFields, "code"), PaginateScope(filter)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTrucks(rows), nil
}

// CountForCompany counts trucks matching the filter
func (r *GormTruckRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TruckModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindSchedulable returns the active trucks of a company
func (r *GormTruckRepository) FindSchedulable(ctx context.Context, companyID uuid.UUID) ([]fleet.Truck, error) {
	var rows []models.TruckModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("status = ?", fleet.TruckStatusActive).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTrucks(rows), nil
}

// ExistsByCode checks if a truck code is taken within a company
func (r *GormTruckRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TruckModel{}).
		Scopes(CompanyScope(companyID)).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a truck
func (r *GormTruckRepository) Save(ctx context.Context, truck *fleet.Truck) error {
	return r.db.WithContext(ctx).Save(models.TruckModelFromDomain(truck)).Error
}

// DeleteForCompany deletes a truck within a company
func (r *GormTruckRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TruckModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormTruckRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Scopes(SearchScope(filter.Search, "code", "name", "license_plate"))
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

func toTrucks(rows []models.TruckModel) []fleet.Truck {
	trucks := make([]fleet.Truck, len(rows))
	for i := range rows {
		trucks[i] = *rows[i].ToDomain()
	}
	return trucks
}

// GormEmployeeRepository implements EmployeeRepository using GORM
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewGormEmployeeRepository creates a new GormEmployeeRepository
func NewGormEmployeeRepository(db *gorm.DB) *GormEmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// FindByIDForCompany finds an employee by ID within a company
func (r *GormEmployeeRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*fleet.Employee, error) {
	var model models.EmployeeModel
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

// FindByIDs loads the employees with the given IDs
func (r *GormEmployeeRepository) FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]fleet.Employee, error) {
	if len(ids) == 0 {
		return []fleet.Employee{}, nil
	}
	var rows []models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("id IN ?", ids).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEmployees(rows), nil
}

// FindAllForCompany lists employees matching the filter
func (r *GormEmployeeRepository) FindAllForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]fleet.Employee, error) {
	var rows []models.EmployeeModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EmployeeModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.
		Scopes(OrderScope(filter, EmployeeSortFields, "name"), PaginateScope(filter)).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEmployees(rows), nil
}

// CountForCompany counts employees matching the filter
func (r *GormEmployeeRepository) CountForCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.EmployeeModel{}).Scopes(CompanyScope(companyID)), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindSchedulable returns the active employees of a company
func (r *GormEmployeeRepository) FindSchedulable(ctx context.Context, companyID uuid.UUID) ([]fleet.Employee, error) {
	var rows []models.EmployeeModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("status = ?", fleet.EmployeeStatusActive).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEmployees(rows), nil
}

// ExistsByCode checks if an employee code is taken within a company
func (r *GormEmployeeRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.EmployeeModel{}).
		Scopes(CompanyScope(companyID)).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an employee
func (r *GormEmployeeRepository) Save(ctx context.Context, employee *fleet.Employee) error {
	return r.db.WithContext(ctx).Save(models.EmployeeModelFromDomain(employee)).Error
}

// DeleteForCompany deletes an employee within a company
func (r *GormEmployeeRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.EmployeeModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormEmployeeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = query.Scopes(SearchScope(filter.Search, "code", "name", "email", "phone"))
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "role":
			query = query.Where("role = ?", value)
		}
	}
	return query
}

func toEmployees(rows []models.EmployeeModel) []fleet.Employee {
	employees := make([]fleet.Employee, len(rows))
	for i := range rows {
		employees[i] = *rows[i].ToDomain()
	}
	return employees
}

// Ensure the GORM repositories implement the fleet interfaces
var (
	_ fleet.TruckRepository    = (*GormTruckRepository)(nil)
	_ fleet.EmployeeRepository = (*GormEmployeeRepository)(nil)
)
