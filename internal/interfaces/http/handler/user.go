package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/syncworks/backend/internal/application/identity"
)

// UserHandler handles company user administration
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create godoc
// @Summary      Create user
// @Description  Create a login for the company. Referrer users must name an active referrer.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identity.CreateUserInput true "User"
// @Success      201 {object} dto.Response{data=identity.UserDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var req identity.CreateUserInput
	if !h.bindJSON(c, &req) {
		return
	}
	req.CompanyID = companyID

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// List godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        keyword    query string false "Email or name contains"
// @Param        status     query string false "active, locked or deactivated"
// @Param        role       query string false "admin, staff or referrer"
// @Param        page       query int    false "Page" default(1)
// @Param        page_size  query int    false "Page size" default(20)
// @Param        sort_by    query string false "Sort field"
// @Param        sort_order query string false "asc or desc"
// @Success      200 {object} dto.Response{data=[]identity.UserDTO,meta=dto.Meta}
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	var filter identity.UserListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	result, err := h.userService.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Users, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.UserDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	byID(&h.BaseHandler, c, h.userService.GetByID)
}

// Update godoc
// @Summary      Update user
// @Description  Change a user's display name, role or referrer. A role change signs the user out.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "User ID" format(uuid)
// @Param        request body identity.UpdateUserInput true "Changes"
// @Success      200 {object} dto.Response{data=identity.UserDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req identity.UpdateUserInput
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), companyID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Activate godoc
// @Summary      Activate user
// @Description  Reactivate a deactivated user or clear a login lock
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.UserDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/activate [post]
func (h *UserHandler) Activate(c *gin.Context) {
	byID(&h.BaseHandler, c, h.userService.Activate)
}

// Deactivate godoc
// @Summary      Deactivate user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID" format(uuid)
// @Success      200 {object} dto.Response{data=identity.UserDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	actorID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Deactivate(c.Request.Context(), companyID, id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ResetPassword godoc
// @Summary      Reset user password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path string                      true "User ID" format(uuid)
// @Param        request body identity.ResetPasswordInput true "New password"
// @Success      200 {object} dto.Response{data=MessageData}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id}/password [put]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req identity.ResetPasswordInput
	if !h.bindJSON(c, &req) {
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), companyID, id, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, MessageData{Message: "Password reset"})
}

// Delete godoc
// @Summary      Delete user
// @Tags         users
// @Param        id path string true "User ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}
	actorID, ok := h.userID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), companyID, id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
