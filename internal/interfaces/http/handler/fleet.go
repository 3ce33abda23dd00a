package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/application/fleet"
)

// FleetHandler handles truck and employee endpoints
type FleetHandler struct {
	BaseHandler
	truckService    *fleet.TruckService
	employeeService *fleet.EmployeeService
}

// NewFleetHandler creates a new fleet handler
func NewFleetHandler(truckService *fleet.TruckService, employeeService *fleet.EmployeeService) *FleetHandler {
	return &FleetHandler{
		truckService:    truckService,
		employeeService: employeeService,
	}
}

// CreateTruck godoc
// @Summary      Create truck
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        request body fleet.CreateTruckRequest true "Truck"
// @Success      201 {object} dto.Response{data=fleet.TruckResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /trucks [post]
func (h *FleetHandler) CreateTruck(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req fleet.CreateTruckRequest
	if !h.bindJSON(c, &req) {
		return
	}

	truck, err := h.truckService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, truck)
}

// ListTrucks godoc
// @Summary      List trucks
// @Tags         fleet
// @Produce      json
// @Param        search    query string false "Code, name or plate contains"
// @Param        status    query string false "active, maintenance or retired"
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "asc or desc"
// @Success      200 {object} dto.Response{data=[]fleet.TruckResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /trucks [get]
func (h *FleetHandler) ListTrucks(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter fleet.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	trucks, total, err := h.truckService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, trucks, total, filter.Page, filter.PageSize)
}

// GetTruck godoc
// @Summary      Get truck
// @Tags         fleet
// @Produce      json
// @Param        id path string true "Truck ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleet.TruckResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /trucks/{id} [get]
func (h *FleetHandler) GetTruck(c *gin.Context) {
	byID(&h.BaseHandler, c, h.truckService.GetByID)
}

// UpdateTruck godoc
// @Summary      Update truck
// @Description  Omitted fields keep their value
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Truck ID" format(uuid)
// @Param        request body fleet.UpdateTruckRequest true "Changes"
// @Success      200 {object} dto.Response{data=fleet.TruckResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /trucks/{id} [put]
func (h *FleetHandler) UpdateTruck(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req fleet.UpdateTruckRequest
	if !h.bindJSON(c, &req) {
		return
	}

	truck, err := h.truckService.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, truck)
}

// ChangeTruckStatus godoc
// @Summary      Change truck status
// @Description  Move a truck between active and maintenance, or retire it. Retired trucks stay retired.
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Truck ID" format(uuid)
// @Param        request body fleet.TruckStatusRequest true "Status"
// @Success      200 {object} dto.Response{data=fleet.TruckResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /trucks/{id}/status [put]
func (h *FleetHandler) ChangeTruckStatus(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req fleet.TruckStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}

	truck, err := h.truckService.ChangeStatus(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, truck)
}

// DeleteTruck godoc
// @Summary      Delete truck
// @Tags         fleet
// @Param        id path string true "Truck ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /trucks/{id} [delete]
func (h *FleetHandler) DeleteTruck(c *gin.Context) {
	h.deleteByID(c, h.truckService.Delete)
}

// CreateEmployee godoc
// @Summary      Create employee
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        request body fleet.CreateEmployeeRequest true "Employee"
// @Success      201 {object} dto.Response{data=fleet.EmployeeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees [post]
func (h *FleetHandler) CreateEmployee(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req fleet.CreateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	emp, err := h.employeeService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, emp)
}

// ListEmployees godoc
// @Summary      List employees
// @Tags         fleet
// @Produce      json
// @Param        search    query string false "Code or name contains"
// @Param        status    query string false "active or inactive"
// @Param        role      query string false "driver, mover or lead"
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]fleet.EmployeeResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /employees [get]
func (h *FleetHandler) ListEmployees(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter fleet.ListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	employees, total, err := h.employeeService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, employees, total, filter.Page, filter.PageSize)
}

// GetEmployee godoc
// @Summary      Get employee
// @Tags         fleet
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleet.EmployeeResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id} [get]
func (h *FleetHandler) GetEmployee(c *gin.Context) {
	byID(&h.BaseHandler, c, h.employeeService.GetByID)
}

// UpdateEmployee godoc
// @Summary      Update employee
// @Tags         fleet
// @Accept       json
// @Produce      json
// @Param        id      path string                      true "Employee ID" format(uuid)
// @Param        request body fleet.UpdateEmployeeRequest true "Changes"
// @Success      200 {object} dto.Response{data=fleet.EmployeeResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id} [put]
func (h *FleetHandler) UpdateEmployee(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req fleet.UpdateEmployeeRequest
	if !h.bindJSON(c, &req) {
		return
	}

	emp, err := h.employeeService.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, emp)
}

// ActivateEmployee godoc
// @Summary      Activate employee
// @Tags         fleet
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleet.EmployeeResponse}
// @Security     BearerAuth
// @Router       /employees/{id}/activate [post]
func (h *FleetHandler) ActivateEmployee(c *gin.Context) {
	byID(&h.BaseHandler, c, h.employeeService.Activate)
}

// DeactivateEmployee godoc
// @Summary      Deactivate employee
// @Description  Inactive employees cannot be given new shifts
// @Tags         fleet
// @Produce      json
// @Param        id path string true "Employee ID" format(uuid)
// @Success      200 {object} dto.Response{data=fleet.EmployeeResponse}
// @Security     BearerAuth
// @Router       /employees/{id}/deactivate [post]
func (h *FleetHandler) DeactivateEmployee(c *gin.Context) {
	byID(&h.BaseHandler, c, h.employeeService.Deactivate)
}

// DeleteEmployee godoc
// @Summary      Delete employee
// @Tags         fleet
// @Param        id path string true "Employee ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /employees/{id} [delete]
func (h *FleetHandler) DeleteEmployee(c *gin.Context) {
	h.deleteByID(c, h.employeeService.Delete)
}
