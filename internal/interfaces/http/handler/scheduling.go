package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/application/scheduling"
)

// DateQuery is the ?date= parameter of availability lookups
type DateQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// SchedulingHandler handles shifts, truck assignments and day views
type SchedulingHandler struct {
	BaseHandler
	schedulingService *scheduling.SchedulingService
}

// NewSchedulingHandler creates a new scheduling handler
func NewSchedulingHandler(schedulingService *scheduling.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{schedulingService: schedulingService}
}

// CreateShift godoc
// @Summary      Create shift
// @Description  Schedule an employee. Shifts of one employee on one date may not overlap.
// @Tags         scheduling
// @Accept       json
// @Produce      json
// @Param        request body scheduling.CreateShiftRequest true "Shift"
// @Success      201 {object} dto.Response{data=scheduling.ShiftResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /scheduling/shifts [post]
func (h *SchedulingHandler) CreateShift(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req scheduling.CreateShiftRequest
	if !h.bindJSON(c, &req) {
		return
	}

	shift, err := h.schedulingService.CreateShift(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shift)
}

// ListShifts godoc
// @Summary      List shifts
// @Tags         scheduling
// @Produce      json
// @Param        from        query string true  "From date (YYYY-MM-DD)"
// @Param        to          query string true  "To date (YYYY-MM-DD)"
// @Param        employee_id query string false "Employee ID" format(uuid)
// @Param        quote_id    query string false "Quote ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]scheduling.ShiftResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /scheduling/shifts [get]
func (h *SchedulingHandler) ListShifts(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter scheduling.ShiftListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	shifts, err := h.schedulingService.ListShifts(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shifts)
}

// DeleteShift godoc
// @Summary      Delete shift
// @Tags         scheduling
// @Param        id path string true "Shift ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /scheduling/shifts/{id} [delete]
func (h *SchedulingHandler) DeleteShift(c *gin.Context) {
	h.deleteByID(c, h.schedulingService.DeleteShift)
}

// AssignTruck godoc
// @Summary      Assign truck to a move
// @Description  Reserve a truck for a booked quote on its move date. A truck holds one move per date.
// @Tags         scheduling
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Quote ID" format(uuid)
// @Param        request body scheduling.AssignTruckRequest true "Truck"
// @Success      201 {object} dto.Response{data=scheduling.TruckAssignmentResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id}/trucks [post]
func (h *SchedulingHandler) AssignTruck(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	quoteID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req scheduling.AssignTruckRequest
	if !h.bindJSON(c, &req) {
		return
	}

	assignment, err := h.schedulingService.AssignTruck(c.Request.Context(), companyID, quoteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, assignment)
}

// ListAssignments godoc
// @Summary      Trucks of a move
// @Tags         scheduling
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]scheduling.TruckAssignmentResponse}
// @Security     BearerAuth
// @Router       /quotes/{id}/trucks [get]
func (h *SchedulingHandler) ListAssignments(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	quoteID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	assignments, err := h.schedulingService.ListAssignments(c.Request.Context(), companyID, quoteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, assignments)
}

// UnassignTruck godoc
// @Summary      Release a truck from a move
// @Tags         scheduling
// @Param        id       path string true "Quote ID" format(uuid)
// @Param        truck_id path string true "Truck ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id}/trucks/{truck_id} [delete]
func (h *SchedulingHandler) UnassignTruck(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	quoteID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	truckID, ok := h.pathID(c, "truck_id")
	if !ok {
		return
	}

	if err := h.schedulingService.UnassignTruck(c.Request.Context(), companyID, quoteID, truckID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DaySchedule godoc
// @Summary      Day schedule
// @Description  Booked moves of a date with their trucks and crews, plus shifts not tied to a move
// @Tags         scheduling
// @Produce      json
// @Param        date path string true "Date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=scheduling.DayScheduleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /scheduling/days/{date} [get]
func (h *SchedulingHandler) DaySchedule(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	day, err := h.schedulingService.DaySchedule(c.Request.Context(), companyID, c.Param("date"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, day)
}

// Availability godoc
// @Summary      Availability
// @Description  Trucks without an assignment and active employees without a shift on a date
// @Tags         scheduling
// @Produce      json
// @Param        date query string true "Date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=scheduling.AvailabilityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /scheduling/availability [get]
func (h *SchedulingHandler) Availability(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var q DateQuery
	if !h.bindQuery(c, &q) {
		return
	}

	avail, err := h.schedulingService.Availability(c.Request.Context(), companyID, q.Date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, avail)
}
