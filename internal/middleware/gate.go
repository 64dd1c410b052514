package middleware

import (
	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/config"
	"adminkit_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Maintenance закрывает сервис на время обслуживания.
// Пользователи с повышенной ролью проходят - им надо чинить.
func Maintenance(cfg *config.Config, auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.App.Maintenance {
			c.Next()
			return
		}

		user, err := auth.LoggedUser(c.Request.Context(), GetSession(c))
		if err != nil {
			appErrors.HandleError(c, err)
			return
		}
		if user != nil && user.Role.IsElevated() {
			c.Next()
			return
		}

		appErrors.HandleError(c, appErrors.ErrMaintenanceMode)
	}
}

// FeatureEnabled режет маршрут, пока флаг выключен.
// Флаг читается на каждый запрос - переключение не требует рестарта роутера.
func FeatureEnabled(enabled func() bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled() {
			appErrors.HandleError(c, appErrors.ErrFeatureDisabled)
			return
		}
		c.Next()
	}
}
