package handlers

import (
	"net/http"

	"adminkit_backend/internal/middleware"
	"adminkit_backend/internal/services"
	"adminkit_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BanHandler struct {
	*BaseHandler
	banService services.BanService
}

func NewBanHandler(base *BaseHandler, banService services.BanService) *BanHandler {
	return &BanHandler{BaseHandler: base, banService: banService}
}

// Ban банит пользователя :id. Причина опциональна.
func (h *BanHandler) Ban(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	var req dto.BanRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	rc := middleware.GetRequestContext(c)
	sess := middleware.GetSession(c)

	if err := h.banService.Ban(c.Request.Context(), rc, sess, id, req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User banned"})
}

func (h *BanHandler) Unban(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	rc := middleware.GetRequestContext(c)
	sess := middleware.GetSession(c)

	if err := h.banService.Unban(c.Request.Context(), rc, sess, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unbanned"})
}

func (h *BanHandler) Reason(c *gin.Context) {
	id := h.ParseIDParam(c)
	if id == 0 {
		return
	}

	reason, banned, err := h.banService.BanReason(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BanReasonResponse{Banned: banned, Reason: reason})
}

func (h *BanHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	users, total, err := h.banService.BannedUsers(query.Page, query.Limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}
