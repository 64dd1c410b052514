package appErrors

import (
	"net/http"

	"adminkit_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err *AppError) {
	if err.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", err)
		if !h.Debug {
			// В продакшене скрывать детали внутренних ошибок
			err = New(CodeInternalError, "Internal server error", http.StatusInternalServerError)
		}
	}

	c.AbortWithStatusJSON(err.HTTPCode, ErrorResponse{Error: err})
}

// HandleError - обработка ошибок для Gin контекста.
// Незнакомые ошибки оборачиваются во внутреннюю.
func HandleError(c *gin.Context, err error) {
	appErr, ok := err.(*AppError)
	if !ok {
		appErr = InternalError(err)
	}

	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, appErr)
}
