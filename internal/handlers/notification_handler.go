package handlers

import (
	"net/http"

	"adminkit_backend/internal/middleware"
	"adminkit_backend/internal/services"
	"adminkit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
	authService         services.AuthService
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService, authService services.AuthService) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
		authService:         authService,
	}
}

// Subscribe регистрирует push-endpoint текущего пользователя.
func (h *NotificationHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	sess := middleware.GetSession(c)

	userID, err := h.authService.LoggedUserID(ctx, sess)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	sub, err := h.notificationService.Subscribe(ctx, userID, req.Endpoint, req.PublicKey, req.AuthToken)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sub)
}

// Unsubscribe закрывает все открытые подписки текущего пользователя.
func (h *NotificationHandler) Unsubscribe(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.GetSession(c)

	userID, err := h.authService.LoggedUserID(ctx, sess)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.notificationService.Close(ctx, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscriptions closed"})
}

// CloseEndpoint закрывает одну подписку, чей endpoint больше не принимает
// уведомления.
func (h *NotificationHandler) CloseEndpoint(c *gin.Context) {
	var req dto.CloseEndpointRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	sess := middleware.GetSession(c)

	userID, err := h.authService.LoggedUserID(ctx, sess)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.notificationService.CloseEndpoint(ctx, userID, req.Endpoint); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription closed"})
}

func (h *NotificationHandler) Subscriptions(c *gin.Context) {
	ctx := c.Request.Context()
	sess := middleware.GetSession(c)

	userID, err := h.authService.LoggedUserID(ctx, sess)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	subs, err := h.notificationService.OpenSubscriptions(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscriptions": subs})
}

// RecordSent фиксирует отправку уведомления пользователю :id. Доступно
// только администраторам, сама доставка выполняется внешним транспортом.
func (h *NotificationHandler) RecordSent(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	var req dto.RecordSentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.notificationService.RecordSent(c.Request.Context(), id, req.Title, req.Message); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Notification recorded"})
}

func (h *NotificationHandler) SentHistory(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	var query dto.PageQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 50
	}

	history, err := h.notificationService.SentHistory(id, limit, (page-1)*limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": history})
}
