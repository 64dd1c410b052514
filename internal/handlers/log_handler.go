package handlers

import (
	"net/http"

	"adminkit_backend/internal/models"
	"adminkit_backend/internal/repositories"
	"adminkit_backend/internal/services"
	"adminkit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type LogHandler struct {
	*BaseHandler
	logService services.LogService
}

func NewLogHandler(base *BaseHandler, logService services.LogService) *LogHandler {
	return &LogHandler{BaseHandler: base, logService: logService}
}

func (h *LogHandler) List(c *gin.Context) {
	var query dto.LogQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	filter := repositories.LogFilter{
		Level:  query.Level,
		Status: models.LogStatus(query.Status),
		Name:   query.Name,
		Page:   query.Page,
		Limit:  query.Limit,
	}

	logs, total, err := h.logService.GetLogs(filter)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": total})
}

func (h *LogHandler) MarkRead(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	if err := h.logService.MarkRead(id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Log marked as read"})
}

func (h *LogHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.logService.MarkAllRead()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *LogHandler) UnreadCount(c *gin.Context) {
	count, err := h.logService.UnreadCount()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": count})
}

// APIAccessLogs возвращает историю обращений пользователя :id по API-ключу.
func (h *LogHandler) APIAccessLogs(c *gin.Context) {
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

	logs, err := h.logService.GetAPIAccessLogs(id, limit, (page-1)*limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
