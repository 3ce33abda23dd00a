package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/domain/scheduling"
	"github.com/syncworks/backend/internal/domain/shared"
	"github.com/syncworks/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShiftRepository implements ShiftRepository using GORM
type GormShiftRepository struct {
	db *gorm.DB
}

// NewGormShiftRepository creates a new GormShiftRepository
func NewGormShiftRepository(db *gorm.DB) *GormShiftRepository {
	return &GormShiftRepository{db: db}
}

// FindByIDForCompany finds a shift by ID within a company
func (r *GormShiftRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*scheduling.Shift, error) {
	var model models.ShiftModel
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

// Find lists shifts ordered by date and start time. Zero bounds are open.
func (r *GormShiftRepository) Find(ctx context.Context, companyID uuid.UUID, filter scheduling.ShiftFilter) ([]scheduling.Shift, error) {
	query := r.db.WithContext(ctx).Scopes(CompanyScope(companyID))
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", shared.TruncateDay(filter.From))
	}
	if !filter.To.IsZero() {
		query = query.Where("date <= ?", shared.TruncateDay(filter.To))
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.QuoteID != nil {
		query = query.Where("quote_id = ?", *filter.QuoteID)
	}

	var rows []models.ShiftModel
	if err := query.Order("date ASC, start_minute ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toShifts(rows), nil
}

// FindForEmployeeOnDate returns an employee's shifts on one day
func (r *GormShiftRepository) FindForEmployeeOnDate(ctx context.Context, companyID, employeeID uuid.UUID, date time.Time) ([]scheduling.Shift, error) {
	var rows []models.ShiftModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("employee_id = ? AND date = ?", employeeID, shared.TruncateDay(date)).
		Order("start_minute ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toShifts(rows), nil
}

// Save creates or updates a shift
func (r *GormShiftRepository) Save(ctx context.Context, shift *scheduling.Shift) error {
	return r.db.WithContext(ctx).Save(models.ShiftModelFromDomain(shift)).Error
}

// DeleteForCompany deletes a shift within a company
func (r *GormShiftRepository) DeleteForCompany(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ShiftModel{}, "company_id = ? AND id = ?", companyID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DetachQuote clears the quote link on every shift of a quote
func (r *GormShiftRepository) DetachQuote(ctx context.Context, companyID, quoteID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ShiftModel{}).
		Scopes(CompanyScope(companyID)).
		Where("quote_id = ?", quoteID).
		Updates(map[string]any{"quote_id": nil, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

func toShifts(rows []models.ShiftModel) []scheduling.Shift {
	shifts := make([]scheduling.Shift, len(rows))
	for i := range rows {
		shifts[i] = *rows[i].ToDomain()
	}
	return shifts
}

// GormTruckAssignmentRepository implements TruckAssignmentRepository using GORM
type GormTruckAssignmentRepository struct {
	db *gorm.DB
}

// NewGormTruckAssignmentRepository creates a new GormTruckAssignmentRepository
func NewGormTruckAssignmentRepository(db *gorm.DB) *GormTruckAssignmentRepository {
	return &GormTruckAssignmentRepository{db: db}
}

// FindOnDate returns all truck assignments for one day
func (r *GormTruckAssignmentRepository) FindOnDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]scheduling.TruckAssignment, error) {
	var rows []models.TruckAssignmentModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("date = ?", shared.TruncateDay(date)).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTruckAssignments(rows), nil
}

// FindForQuote returns the assignments of a quote
func (r *GormTruckAssignmentRepository) FindForQuote(ctx context.Context, companyID, quoteID uuid.UUID) ([]scheduling.TruckAssignment, error) {
	var rows []models.TruckAssignmentModel
	if err := r.db.WithContext(ctx).
		Scopes(CompanyScope(companyID)).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toTruckAssignments(rows), nil
}

// ExistsForTruckOnDate reports whether the truck is already reserved on the day
func (r *GormTruckAssignmentRepository) ExistsForTruckOnDate(ctx context.Context, companyID, truckID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TruckAssignmentModel{}).
		Scopes(CompanyScope(companyID)).
		Where("truck_id = ? AND date = ?", truckID, shared.TruncateDay(date)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an assignment
func (r *GormTruckAssignmentRepository) Save(ctx context.Context, a *scheduling.TruckAssignment) error {
	return r.db.WithContext(ctx).Save(models.TruckAssignmentModelFromDomain(a)).Error
}

// Delete removes one truck from a quote
func (r *GormTruckAssignmentRepository) Delete(ctx context.Context, companyID, truckID, quoteID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TruckAssignmentModel{},
		"company_id = ? AND truck_id = ? AND quote_id = ?", companyID, truckID, quoteID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteForQuote releases every truck assigned to a quote
func (r *GormTruckAssignmentRepository) DeleteForQuote(ctx context.Context, companyID, quoteID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.TruckAssignmentModel{}, "company_id = ? AND quote_id = ?", companyID, quoteID)
	return result.RowsAffected, result.Error
}

func toTruckAssignments(rows []models.TruckAssignmentModel) []scheduling.TruckAssignment {
	assignments := make([]scheduling.TruckAssignment, len(rows))
	for i := range rows {
		assignments[i] = *rows[i].ToDomain()
	}
	return assignments
}

// Ensure the GORM repositories implement the scheduling interfaces
var (
	_ scheduling.ShiftRepository           = (*GormShiftRepository)(nil)
	_ scheduling.TruckAssignmentRepository = (*GormTruckAssignmentRepository)(nil)
)
