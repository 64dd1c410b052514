package handlers

import (
	"net/http"

	"adminkit_backend/internal/middleware"
	"adminkit_backend/internal/services"
	"adminkit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rc := middleware.GetRequestContext(c)

	user, err := h.authService.Register(c.Request.Context(), rc, req.Username, req.Password)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user_id": user.ID,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	rc := middleware.GetRequestContext(c)
	sess := middleware.GetSession(c)
	cookies := middleware.GetCookies(c)

	if err := h.authService.Login(ctx, rc, sess, cookies, req.Username, req.Password, req.Remember); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	username, err := h.authService.LoggedUsername(ctx, sess)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"username": username,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	rc := middleware.GetRequestContext(c)
	sess := middleware.GetSession(c)
	cookies := middleware.GetCookies(c)

	if err := h.authService.Logout(ctx, rc, sess, cookies); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// WhoAmI отдает состояние текущей сессии (анонимность - не ошибка).
func (h *AuthHandler) WhoAmI(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.GetSession(c)

	user, err := h.authService.LoggedUser(ctx, sess)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if user == nil {
		c.JSON(http.StatusOK, dto.WhoAmIResponse{LoggedIn: false})
		return
	}

	c.JSON(http.StatusOK, dto.WhoAmIResponse{
		LoggedIn: true,
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
}
