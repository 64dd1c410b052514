package handlers

import (
	"net/http"

	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/middleware"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/services"
	"adminkit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
	authService services.AuthService
}

func NewUserHandler(base *BaseHandler, userService services.UserService, authService services.AuthService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
		authService: authService,
	}
}

func (h *UserHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	users, total, err := h.userService.List(query.Page, query.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

func (h *UserHandler) Get(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	user, err := h.userService.GetByID(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Online(c *gin.Context) {
	users, err := h.authService.OnlineUsers(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

func (h *UserHandler) Status(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": id,
		"status":  h.authService.UserStatus(c.Request.Context(), id),
	})
}

func (h *UserHandler) UpdateRole(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	var req dto.UpdateRoleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rc := middleware.GetRequestContext(c)
	if err := h.userService.UpdateRole(c.Request.Context(), rc, id, models.UserRole(req.Role)); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

func (h *UserHandler) UpdateUsername(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	var req dto.UpdateUsernameRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rc := middleware.GetRequestContext(c)
	if err := h.userService.UpdateUsername(c.Request.Context(), rc, id, req.Username); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Username updated"})
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	var req dto.UpdatePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rc := middleware.GetRequestContext(c)
	if err := h.userService.UpdatePassword(c.Request.Context(), rc, id, req.Password); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *UserHandler) UpdateProfilePicture(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	var req dto.UpdateProfilePictureRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.UpdateProfilePicture(id, req.Picture); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile picture updated"})
}

func (h *UserHandler) SetAPIAccess(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	var req dto.SetAPIAccessRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rc := middleware.GetRequestContext(c)
	if err := h.userService.SetAPIAccess(c.Request.Context(), rc, id, *req.Allowed); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "API access updated"})
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	rc := middleware.GetRequestContext(c)
	if err := h.userService.Delete(c.Request.Context(), rc, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// ResetPassword генерирует новый пароль и показывает его один раз.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	username := c.Param("username")

	rc := middleware.GetRequestContext(c)
	password, err := h.authService.ResetUserPassword(c.Request.Context(), rc, username)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResetPasswordResponse{Password: password})
}

func (h *UserHandler) RegenerateToken(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	rc := middleware.GetRequestContext(c)
	found, err := h.authService.RegenerateUserToken(c.Request.Context(), rc, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !found {
		h.HandleServiceError(c, appErrors.ErrUserNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token regenerated"})
}

func (h *UserHandler) RegenerateAllTokens(c *gin.Context) {
	rc := middleware.GetRequestContext(c)
	result := h.authService.RegenerateAllTokens(c.Request.Context(), rc)

	status := http.StatusOK
	if result.Status != "ok" {
		status = http.StatusInternalServerError
	}
	c.JSON(status, result)
}
