package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/syncworks/backend/internal/application/quote"
	"github.com/syncworks/backend/internal/interfaces/http/middleware"
)

// QuoteHandler handles quote intake and the quote lifecycle
type QuoteHandler struct {
	BaseHandler
	quoteService *quote.QuoteService
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quoteService *quote.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Submit godoc
// @Summary      Submit a quote request
// @Description  Public quote form. Crew, trucks and hours default from the move size; the price includes season adjustments.
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        code    path string                   true "Company code"
// @Param        request body quote.SubmitQuoteRequest true "Quote form"
// @Success      201 {object} dto.Response{data=quote.SubmitQuoteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /public/companies/{code}/quotes [post]
func (h *QuoteHandler) Submit(c *gin.Context) {
	var req quote.SubmitQuoteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.quoteService.Submit(c.Request.Context(), c.Param("code"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List godoc
// @Summary      List quotes
// @Tags         quotes
// @Produce      json
// @Param        search      query string false "Number or customer contains"
// @Param        status      query string false "Quote status"
// @Param        from        query string false "Move date from (YYYY-MM-DD)"
// @Param        to          query string false "Move date to (YYYY-MM-DD)"
// @Param        referrer_id query string false "Referrer ID" format(uuid)
// @Param        page        query int    false "Page" default(1)
// @Param        page_size   query int    false "Page size" default(20)
// @Param        order_by    query string false "created_at, move_date, total_price or quote_number"
// @Param        order_dir   query string false "asc or desc"
// @Success      200 {object} dto.Response{data=[]quote.QuoteListResponse,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter quote.QuoteListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	h.list(c, companyID, filter)
}

func (h *QuoteHandler) list(c *gin.Context, companyID uuid.UUID, filter quote.QuoteListFilter) {
	quotes, total, err := h.quoteService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, quotes, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary      Get quote
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} dto.Response{data=quote.QuoteResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) Get(c *gin.Context) {
	byID(&h.BaseHandler, c, h.quoteService.GetByID)
}

// GetByNumber godoc
// @Summary      Get quote by number
// @Tags         quotes
// @Produce      json
// @Param        number path string true "Quote number" example(Q-20260501-AB12CD)
// @Success      200 {object} dto.Response{data=quote.QuoteResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/number/{number} [get]
func (h *QuoteHandler) GetByNumber(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	q, err := h.quoteService.GetByNumber(c.Request.Context(), companyID, c.Param("number"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// Update godoc
// @Summary      Update quote
// @Description  Replace the move details of a pending or quoted quote and reprice it
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Quote ID" format(uuid)
// @Param        request body quote.UpdateQuoteRequest true "Move details"
// @Success      200 {object} dto.Response{data=quote.QuoteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req quote.UpdateQuoteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	q, err := h.quoteService.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// Reprice godoc
// @Summary      Reprice quote
// @Description  Recompute the price with today's rules, optionally with new rates
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id      path string               true  "Quote ID" format(uuid)
// @Param        request body quote.RepriceRequest false "Rate overrides"
// @Success      200 {object} dto.Response{data=quote.QuoteResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id}/reprice [post]
func (h *QuoteHandler) Reprice(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req quote.RepriceRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	q, err := h.quoteService.Reprice(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// MarkQuoted godoc
// @Summary      Mark quote as sent
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} dto.Response{data=quote.QuoteResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id}/quoted [post]
func (h *QuoteHandler) MarkQuoted(c *gin.Context) {
	byID(&h.BaseHandler, c, h.quoteService.MarkQuoted)
}

// Book godoc
// @Summary      Book quote
// @Description  Book the move and optionally reserve trucks for the move date. The date must not be in the past.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id      path string                 true  "Quote ID" format(uuid)
// @Param        request body quote.BookQuoteRequest false "Trucks to reserve"
// @Success      200 {object} dto.Response{data=quote.QuoteResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id}/book [post]
func (h *QuoteHandler) Book(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req quote.BookQuoteRequest
	if c.Request.ContentLength != 0 && !h.bindJSON(c, &req) {
		return
	}

	q, err := h.quoteService.Book(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// Complete godoc
// @Summary      Complete quote
// @Tags         quotes
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} dto.Response{data=quote.QuoteResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id}/complete [post]
func (h *QuoteHandler) Complete(c *gin.Context) {
	byID(&h.BaseHandler, c, h.quoteService.Complete)
}

// Cancel godoc
// @Summary      Cancel quote
// @Description  Cancel a pending, quoted or booked quote. Truck reservations of a booked quote are released.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Quote ID" format(uuid)
// @Param        request body quote.CancelQuoteRequest true "Reason"
// @Success      200 {object} dto.Response{data=quote.QuoteResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id}/cancel [post]
func (h *QuoteHandler) Cancel(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req quote.CancelQuoteRequest
	if !h.bindJSON(c, &req) {
		return
	}

	q, err := h.quoteService.Cancel(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// Delete godoc
// @Summary      Delete quote
// @Description  Only pending quotes can be deleted
// @Tags         quotes
// @Param        id path string true "Quote ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	h.deleteByID(c, h.quoteService.Delete)
}

// Summary godoc
// @Summary      Quote status summary
// @Tags         quotes
// @Produce      json
// @Success      200 {object} dto.Response{data=quote.StatusSummaryResponse}
// @Security     BearerAuth
// @Router       /quotes/summary [get]
func (h *QuoteHandler) Summary(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	summary, err := h.quoteService.StatusSummary(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// DownloadPDF godoc
// @Summary      Quote PDF
// @Description  Render the quote as a PDF document
// @Tags         quotes
// @Produce      application/pdf
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {file} binary
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id}/pdf [get]
func (h *QuoteHandler) DownloadPDF(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	doc, err := h.quoteService.ExportPDF(c.Request.Context(), companyID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	disposition := "attachment"
	if c.Query("inline") == "true" {
		disposition = "inline"
	}
	c.Header("Content-Disposition", disposition+"; filename="+strconv.Quote(doc.FileName))
	if doc.ArchiveKey != "" {
		c.Header("X-Archive-Key", doc.ArchiveKey)
	}
	c.Data(http.StatusOK, "application/pdf", doc.Content)
}

// CreateUploadURL godoc
// @Summary      Attachment upload URL
// @Description  Reserve an attachment slot on the quote and return a presigned PUT URL
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id      path string                        true "Quote ID" format(uuid)
// @Param        request body quote.AttachmentUploadRequest true "File"
// @Success      201 {object} dto.Response{data=quote.AttachmentURLResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id}/attachments [post]
func (h *QuoteHandler) CreateUploadURL(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req quote.AttachmentUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}

	url, err := h.quoteService.CreateUploadURL(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, url)
}

// CreateDownloadURL godoc
// @Summary      Attachment download URL
// @Tags         quotes
// @Produce      json
// @Param        id  path  string true "Quote ID" format(uuid)
// @Param        key query string true "Attachment key"
// @Success      200 {object} dto.Response{data=quote.AttachmentURLResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /quotes/{id}/attachments/download [get]
func (h *QuoteHandler) CreateDownloadURL(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "key is required")
		return
	}

	url, err := h.quoteService.CreateDownloadURL(c.Request.Context(), companyID, id, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, url)
}

// ListMine godoc
// @Summary      My referred quotes
// @Description  Quotes submitted with the calling referrer's code
// @Tags         referrer portal
// @Produce      json
// @Param        status    query string false "Quote status"
// @Param        from      query string false "Move date from (YYYY-MM-DD)"
// @Param        to        query string false "Move date to (YYYY-MM-DD)"
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]quote.QuoteListResponse,meta=dto.Meta}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /me/quotes [get]
func (h *QuoteHandler) ListMine(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	referrerID := middleware.GetReferrerID(c)
	if referrerID == nil {
		h.Forbidden(c, "Only referrer accounts have referred quotes")
		return
	}
	var filter quote.QuoteListFilter
	if !h.bindQuery(c, &filter) {
		return
	}
	filter.ReferrerID = referrerID
	h.list(c, companyID, filter)
}

// GetMine godoc
// @Summary      My referred quote
// @Tags         referrer portal
// @Produce      json
// @Param        id path string true "Quote ID" format(uuid)
// @Success      200 {object} dto.Response{data=quote.QuoteResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /me/quotes/{id} [get]
func (h *QuoteHandler) GetMine(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	referrerID := middleware.GetReferrerID(c)
	if referrerID == nil {
		h.Forbidden(c, "Only referrer accounts have referred quotes")
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	q, err := h.quoteService.GetByIDForReferrer(c.Request.Context(), companyID, *referrerID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}
