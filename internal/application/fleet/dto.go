package fleet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/syncworks/backend/internal/domain/fleet"
)

// CreateTruckRequest represents a request to add a truck
type CreateTruckRequest struct {
	Code         string `json:"code" binding:"required,min=1,max=50"`
	Name         string `json:"name" binding:"required,min=1,max=200"`
	LicensePlate string `json:"license_plate" binding:"max=20"`
	CapacityCuFt int    `json:"capacity_cu_ft" binding:"min=0,max=5000"`
	Notes        string `json:"notes" binding:"max=2000"`
}

// UpdateTruckRequest represents a request to update a truck
type UpdateTruckRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=200"`
	LicensePlate *string `json:"license_plate" binding:"omitempty,max=20"`
	CapacityCuFt *int    `json:"capacity_cu_ft" binding:"omitempty,min=0,max=5000"`
	Notes        *string `json:"notes" binding:"omitempty,max=2000"`
}

// TruckStatusRequest changes a truck's status
type TruckStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active maintenance retired"`
}

// ListFilter is shared by truck and employee listings
type ListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status"`
	Role     string `form:"role"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// TruckResponse represents a truck in API responses
type TruckResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	LicensePlate string    `json:"license_plate,omitempty"`
	CapacityCuFt int       `json:"capacity_cu_ft"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateEmployeeRequest represents a request to add an employee
type CreateEmployeeRequest struct {
	Code       string          `json:"code" binding:"required,min=1,max=50"`
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Email      string          `json:"email" binding:"omitempty,email"`
	Phone      string          `json:"phone" binding:"max=50"`
	Role       string          `json:"role" binding:"required,oneof=driver mover lead"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

// UpdateEmployeeRequest represents a request to update an employee
type UpdateEmployeeRequest struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Email      *string          `json:"email" binding:"omitempty,email"`
	Phone      *string          `json:"phone" binding:"omitempty,max=50"`
	Role       *string          `json:"role" binding:"omitempty,oneof=driver mover lead"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID         uuid.UUID       `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Email      string          `json:"email,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	Role       string          `json:"role"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ToTruckResponse converts a domain Truck to TruckResponse
func ToTruckResponse(t *fleet.Truck) TruckResponse {
	return TruckResponse{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		LicensePlate: t.LicensePlate,
		CapacityCuFt: t.CapacityCuFt,
		Status:       string(t.Status),
		Notes:        t.Notes,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// ToTruckResponses converts a slice of trucks
func ToTruckResponses(trucks []fleet.Truck) []TruckResponse {
	out := make([]TruckResponse, len(trucks))
	for i := range trucks {
		out[i] = ToTruckResponse(&trucks[i])
	}
	return out
}

// ToEmployeeResponse converts a domain Employee to EmployeeResponse
func ToEmployeeResponse(e *fleet.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Code:       e.Code,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Role:       string(e.Role),
		HourlyRate: e.HourlyRate,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

// ToEmployeeResponses converts a slice of employees
func ToEmployeeResponses(employees []fleet.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(employees))
	for i := range employees {
		out[i] = ToEmployeeResponse(&employees[i])
	}
	return out
}
