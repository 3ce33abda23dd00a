package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/application/company"
)

// CompanyHandler serves the caller's company profile and the public
// company lookup used by the quote form
type CompanyHandler struct {
	BaseHandler
	companyService *company.CompanyService
}

// NewCompanyHandler creates a new company handler
func NewCompanyHandler(companyService *company.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// GetMine godoc
// @Summary      Get my company
// @Tags         company
// @Produce      json
// @Success      200 {object} dto.Response{data=company.CompanyResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company [get]
func (h *CompanyHandler) GetMine(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	co, err := h.companyService.Get(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, co)
}

// UpdateProfile godoc
// @Summary      Update company profile
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body company.UpdateCompanyRequest true "Profile"
// @Success      200 {object} dto.Response{data=company.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company [put]
func (h *CompanyHandler) UpdateProfile(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req company.UpdateCompanyRequest
	if !h.bindJSON(c, &req) {
		return
	}

	co, err := h.companyService.UpdateProfile(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, co)
}

// UpdateRates godoc
// @Summary      Update default rates
// @Description  Set the hourly crew rate and per-truck fee used for new quotes
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body company.UpdateRatesRequest true "Rates"
// @Success      200 {object} dto.Response{data=company.CompanyResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /company/rates [put]
func (h *CompanyHandler) UpdateRates(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req company.UpdateRatesRequest
	if !h.bindJSON(c, &req) {
		return
	}

	co, err := h.companyService.UpdateRates(c.Request.Context(), companyID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, co)
}

// GetPublic godoc
// @Summary      Public company lookup
// @Description  Name and contact details shown on the public quote form
// @Tags         public
// @Produce      json
// @Param        code path string true "Company code"
// @Success      200 {object} dto.Response{data=company.PublicCompanyResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /public/companies/{code} [get]
func (h *CompanyHandler) GetPublic(c *gin.Context) {
	co, err := h.companyService.GetPublic(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, co)
}
