package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/application/company"
)

// ReferrerHandler handles referrer partner endpoints
type ReferrerHandler struct {
	BaseHandler
	referrerService *company.ReferrerService
}

// NewReferrerHandler creates a new referrer handler
func NewReferrerHandler(referrerService *company.ReferrerService) *ReferrerHandler {
	return &ReferrerHandler{referrerService: referrerService}
}

// Create godoc
// @Summary      Create referrer
// @Tags         referrers
// @Accept       json
// @Produce      json
// @Param        request body company.CreateReferrerRequest true "Referrer"
// @Success      201 {object} dto.Response{data=company.ReferrerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /referrers [post]
func (h *ReferrerHandler) Create(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req company.CreateReferrerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ref, err := h.referrerService.Create(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ref)
}

// List godoc
// @Summary      List referrers
// @Tags         referrers
// @Produce      json
// @Param        search    query string false "Name or code contains"
// @Param        status    query string false "active or inactive"
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Param        order_by  query string false "Sort field"
// @Param        order_dir query string false "asc or desc"
// @Success      200 {object} dto.Response{data=[]company.ReferrerResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /referrers [get]
func (h *ReferrerHandler) List(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter company.ReferrerListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	refs, total, err := h.referrerService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, refs, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary      Get referrer
// @Tags         referrers
// @Produce      json
// @Param        id path string true "Referrer ID" format(uuid)
// @Success      200 {object} dto.Response{data=company.ReferrerResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /referrers/{id} [get]
func (h *ReferrerHandler) Get(c *gin.Context) {
	byID(&h.BaseHandler, c, h.referrerService.GetByID)
}

// Update godoc
// @Summary      Update referrer
// @Tags         referrers
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Referrer ID" format(uuid)
// @Param        request body company.UpdateReferrerRequest true "Changes"
// @Success      200 {object} dto.Response{data=company.ReferrerResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /referrers/{id} [put]
func (h *ReferrerHandler) Update(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req company.UpdateReferrerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ref, err := h.referrerService.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ref)
}

// Activate godoc
// @Summary      Activate referrer
// @Tags         referrers
// @Produce      json
// @Param        id path string true "Referrer ID" format(uuid)
// @Success      200 {object} dto.Response{data=company.ReferrerResponse}
// @Security     BearerAuth
// @Router       /referrers/{id}/activate [post]
func (h *ReferrerHandler) Activate(c *gin.Context) {
	byID(&h.BaseHandler, c, h.referrerService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate referrer
// @Description  Quotes submitted with the code of an inactive referrer are not attributed
// @Tags         referrers
// @Produce      json
// @Param        id path string true "Referrer ID" format(uuid)
// @Success      200 {object} dto.Response{data=company.ReferrerResponse}
// @Security     BearerAuth
// @Router       /referrers/{id}/deactivate [post]
func (h *ReferrerHandler) Deactivate(c *gin.Context) {
	byID(&h.BaseHandler, c, h.referrerService.Deactivate)
}

// Delete godoc
// @Summary      Delete referrer
// @Tags         referrers
// @Param        id path string true "Referrer ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /referrers/{id} [delete]
func (h *ReferrerHandler) Delete(c *gin.Context) {
	h.deleteByID(c, h.referrerService.Delete)
}

// Stats godoc
// @Summary      Referral stats
// @Description  Quotes referred, booked, completed revenue and commission owed. Defaults to year to date.
// @Tags         referrers
// @Produce      json
// @Param        id   path  string true  "Referrer ID" format(uuid)
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Param        to   query string false "End date (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=company.ReferralStatsResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /referrers/{id}/stats [get]
func (h *ReferrerHandler) Stats(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req company.ReferralStatsRequest
	if !h.bindQuery(c, &req) {
		return
	}

	stats, err := h.referrerService.Stats(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
