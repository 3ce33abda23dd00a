package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/application/report"
	"github.com/syncworks/backend/internal/interfaces/http/middleware"
)

// DashboardHandler serves the admin and referrer landing pages
type DashboardHandler struct {
	BaseHandler
	dashboardService *report.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *report.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Admin godoc
// @Summary      Admin dashboard
// @Description  Quote counts, booked revenue, upcoming moves, today's fleet use and top referrers. Defaults to the current month.
// @Tags         dashboards
// @Produce      json
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to   query string false "To date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=report.AdminDashboardResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboards/admin [get]
func (h *DashboardHandler) Admin(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req report.DashboardRequest
	if !h.bindQuery(c, &req) {
		return
	}

	dash, err := h.dashboardService.AdminDashboard(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dash)
}

// Referrer godoc
// @Summary      Referrer dashboard
// @Description  The calling referrer's stats and recent quotes
// @Tags         referrer portal
// @Produce      json
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Param        to   query string false "To date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=report.ReferrerDashboardResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /me/dashboard [get]
func (h *DashboardHandler) Referrer(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	referrerID := middleware.GetReferrerID(c)
	if referrerID == nil {
		h.Forbidden(c, "Only referrer accounts have a referrer dashboard")
		return
	}
	var req report.DashboardRequest
	if !h.bindQuery(c, &req) {
		return
	}

	dash, err := h.dashboardService.ReferrerDashboard(c.Request.Context(), companyID, *referrerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dash)
}
