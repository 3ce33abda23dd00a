package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/application/pricing"
	"github.com/syncworks/backend/internal/interfaces/http/dto"
	"github.com/syncworks/backend/internal/interfaces/http/middleware"
)

// maxHolidayFileSize caps holiday CSV uploads at 1MB
const maxHolidayFileSize = 1 << 20

// PricingHandler handles season rules, holidays and price previews
type PricingHandler struct {
	BaseHandler
	ruleService    *pricing.SeasonRuleService
	holidayService *pricing.HolidayService
	pricingService *pricing.PricingService
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(
	ruleService *pricing.SeasonRuleService,
	holidayService *pricing.HolidayService,
	pricingService *pricing.PricingService,
) *PricingHandler {
	return &PricingHandler{
		ruleService:    ruleService,
		holidayService: holidayService,
		pricingService: pricingService,
	}
}

// CreateRule godoc
// @Summary      Create season rule
// @Description  Add a recurring or one-off price adjustment
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request body pricing.SeasonRuleRequest true "Rule"
// @Success      201 {object} dto.Response{data=pricing.SeasonRuleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/rules [post]
func (h *PricingHandler) CreateRule(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req pricing.SeasonRuleRequest
	if !h.bindJSON(c, &req) {
		return
	}
	createdBy := middleware.GetUserID(c)

	rule, err := h.ruleService.Create(c.Request.Context(), companyID, req, &createdBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rule)
}

// ListRules godoc
// @Summary      List season rules
// @Tags         pricing
// @Produce      json
// @Param        search          query string false "Name contains"
// @Param        is_active       query bool   false "Active only"
// @Param        recurrence      query string false "weekly, monthly, yearly, specific_date or holiday"
// @Param        adjustment_type query string false "percentage or fixed"
// @Param        page            query int    false "Page" default(1)
// @Param        page_size       query int    false "Page size" default(20)
// @Param        order_by        query string false "name, priority or created_at"
// @Param        order_dir       query string false "asc or desc"
// @Success      200 {object} dto.Response{data=[]pricing.SeasonRuleResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /pricing/rules [get]
func (h *PricingHandler) ListRules(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter pricing.SeasonRuleListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	rules, total, err := h.ruleService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rules, total, filter.Page, filter.PageSize)
}

// GetRule godoc
// @Summary      Get season rule
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Rule ID" format(uuid)
// @Success      200 {object} dto.Response{data=pricing.SeasonRuleResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/rules/{id} [get]
func (h *PricingHandler) GetRule(c *gin.Context) {
	byID(&h.BaseHandler, c, h.ruleService.GetByID)
}

// UpdateRule godoc
// @Summary      Update season rule
// @Description  Replace the rule definition
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "Rule ID" format(uuid)
// @Param        request body pricing.SeasonRuleRequest true "Rule"
// @Success      200 {object} dto.Response{data=pricing.SeasonRuleResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/rules/{id} [put]
func (h *PricingHandler) UpdateRule(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req pricing.SeasonRuleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	rule, err := h.ruleService.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rule)
}

// ActivateRule godoc
// @Summary      Activate season rule
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Rule ID" format(uuid)
// @Success      200 {object} dto.Response{data=pricing.SeasonRuleResponse}
// @Security     BearerAuth
// @Router       /pricing/rules/{id}/activate [post]
func (h *PricingHandler) ActivateRule(c *gin.Context) {
	byID(&h.BaseHandler, c, h.ruleService.Activate)
}

// DeactivateRule godoc
// @Summary      Deactivate season rule
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Rule ID" format(uuid)
// @Success      200 {object} dto.Response{data=pricing.SeasonRuleResponse}
// @Security     BearerAuth
// @Router       /pricing/rules/{id}/deactivate [post]
func (h *PricingHandler) DeactivateRule(c *gin.Context) {
	byID(&h.BaseHandler, c, h.ruleService.Deactivate)
}

// DeleteRule godoc
// @Summary      Delete season rule
// @Tags         pricing
// @Param        id path string true "Rule ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/rules/{id} [delete]
func (h *PricingHandler) DeleteRule(c *gin.Context) {
	h.deleteByID(c, h.ruleService.Delete)
}

// CreateHoliday godoc
// @Summary      Create holiday
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request body pricing.HolidayRequest true "Holiday"
// @Success      201 {object} dto.Response{data=pricing.HolidayResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/holidays [post]
func (h *PricingHandler) CreateHoliday(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req pricing.HolidayRequest
	if !h.bindJSON(c, &req) {
		return
	}

	holiday, err := h.holidayService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, holiday)
}

// ListHolidays godoc
// @Summary      List holidays
// @Tags         pricing
// @Produce      json
// @Param        search           query string false "Name contains"
// @Param        from             query string false "From date (YYYY-MM-DD)"
// @Param        to               query string false "To date (YYYY-MM-DD)"
// @Param        recurring_yearly query bool   false "Recurring only"
// @Param        page             query int    false "Page" default(1)
// @Param        page_size        query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]pricing.HolidayResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /pricing/holidays [get]
func (h *PricingHandler) ListHolidays(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter pricing.HolidayListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	holidays, total, err := h.holidayService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, holidays, total, filter.Page, filter.PageSize)
}

// GetHoliday godoc
// @Summary      Get holiday
// @Tags         pricing
// @Produce      json
// @Param        id path string true "Holiday ID" format(uuid)
// @Success      200 {object} dto.Response{data=pricing.HolidayResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/holidays/{id} [get]
func (h *PricingHandler) GetHoliday(c *gin.Context) {
	byID(&h.BaseHandler, c, h.holidayService.GetByID)
}

// UpdateHoliday godoc
// @Summary      Update holiday
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Holiday ID" format(uuid)
// @Param        request body pricing.HolidayRequest true "Holiday"
// @Success      200 {object} dto.Response{data=pricing.HolidayResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/holidays/{id} [put]
func (h *PricingHandler) UpdateHoliday(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req pricing.HolidayRequest
	if !h.bindJSON(c, &req) {
		return
	}

	holiday, err := h.holidayService.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, holiday)
}

// DeleteHoliday godoc
// @Summary      Delete holiday
// @Tags         pricing
// @Param        id path string true "Holiday ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/holidays/{id} [delete]
func (h *PricingHandler) DeleteHoliday(c *gin.Context) {
	h.deleteByID(c, h.holidayService.Delete)
}

// ImportHolidays godoc
// @Summary      Import holidays
// @Description  Upload a CSV with name,date[,recurring_yearly,observed] columns. Dates already taken are skipped and reported.
// @Tags         pricing
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Holiday CSV"
// @Success      200 {object} dto.Response{data=pricing.HolidayImportResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      415 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/holidays/import [post]
func (h *PricingHandler) ImportHolidays(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			middleware.AbortBodyTooLarge(c)
			return
		}
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if header.Size > maxHolidayFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "file exceeds maximum size of 1MB")
		return
	}
	switch header.Header.Get("Content-Type") {
	case "", "text/csv", "text/plain", "application/octet-stream", "application/vnd.ms-excel":
	default:
		h.Error(c, http.StatusUnsupportedMediaType, dto.ErrCodeValidation, "file must be a CSV file")
		return
	}

	result, err := h.holidayService.Import(c.Request.Context(), companyID, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Preview godoc
// @Summary      Preview a season adjustment
// @Description  Apply the company's active rules and holidays to a base price on a date
// @Tags         pricing
// @Produce      json
// @Param        date       query string true "Move date (YYYY-MM-DD)"
// @Param        base_price query string true "Base price"
// @Success      200 {object} dto.Response{data=pricing.AdjustmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/preview [get]
func (h *PricingHandler) Preview(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req pricing.PreviewRequest
	if !h.bindQuery(c, &req) {
		return
	}

	adj, err := h.pricingService.Preview(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, adj)
}

// Calendar godoc
// @Summary      Rate calendar
// @Description  Per-day adjustments and holidays over a date range
// @Tags         pricing
// @Produce      json
// @Param        from query string true "From date (YYYY-MM-DD)"
// @Param        to   query string true "To date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=pricing.CalendarResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pricing/calendar [get]
func (h *PricingHandler) Calendar(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req pricing.CalendarRequest
	if !h.bindQuery(c, &req) {
		return
	}

	cal, err := h.pricingService.Calendar(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, cal)
}
