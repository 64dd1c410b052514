package routes

import (
	"adminkit_backend/internal/config"
	"adminkit_backend/internal/handlers"
	"adminkit_backend/internal/middleware"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты приложения.
//
// Порядок групп важен: публичные маршруты получают сессию и режим
// обслуживания, приватные сверх того проходят проверку логина и бана.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	sc *services.ServiceContainer,
	cfg *config.Config,
) {
	rememberCookie := cfg.Security.RememberCookieName

	api := ginRouter.Group("/api/v1")
	api.Use(middleware.Maintenance(cfg, sc.AuthService))
	api.Use(middleware.AutoLogin(sc.AuthService, rememberCookie))

	// Аутентификация. Регистрация дополнительно закрыта фичефлагом.
	auth := api.Group("/auth")
	{
		auth.POST("/register",
			middleware.FeatureEnabled(func() bool { return cfg.App.RegistrationEnabled }),
			appHandlers.AuthHandler.Register)
		auth.POST("/login", appHandlers.AuthHandler.Login)
		auth.POST("/logout", appHandlers.AuthHandler.Logout)
		auth.GET("/whoami", appHandlers.AuthHandler.WhoAmI)
	}

	// Приватная зона: нужен живой логин (сессия или API-ключ),
	// забаненные выбрасываются с уничтожением сессии.
	private := api.Group("")
	private.Use(middleware.AuthenticatedCheck(sc.AuthService))
	private.Use(middleware.BannedCheck(sc.AuthService, sc.BanService, rememberCookie))
	{
		users := private.Group("/users")
		{
			users.GET("/online", appHandlers.UserHandler.Online)
			users.GET("/:id", appHandlers.UserHandler.Get)
			users.GET("/:id/status", appHandlers.UserHandler.Status)
		}

		push := private.Group("/notifications")
		{
			push.POST("/subscribe", appHandlers.NotificationHandler.Subscribe)
			push.POST("/unsubscribe", appHandlers.NotificationHandler.Unsubscribe)
			push.POST("/close-endpoint", appHandlers.NotificationHandler.CloseEndpoint)
			push.GET("/subscriptions", appHandlers.NotificationHandler.Subscriptions)
		}
	}

	// Админка: только привилегированные роли.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthenticatedCheck(sc.AuthService))
	admin.Use(middleware.BannedCheck(sc.AuthService, sc.BanService, rememberCookie))
	admin.Use(middleware.RequireRoles(sc.AuthService,
		models.UserRoleAdmin, models.UserRoleDeveloper, models.UserRoleOwner))
	{
		adminUsers := admin.Group("/users")
		{
			adminUsers.GET("", appHandlers.UserHandler.List)
			adminUsers.PUT("/:id/role", appHandlers.UserHandler.UpdateRole)
			adminUsers.PUT("/:id/username", appHandlers.UserHandler.UpdateUsername)
			adminUsers.PUT("/:id/password", appHandlers.UserHandler.UpdatePassword)
			adminUsers.PUT("/:id/profile-picture", appHandlers.UserHandler.UpdateProfilePicture)
			adminUsers.PUT("/:id/api-access", appHandlers.UserHandler.SetAPIAccess)
			adminUsers.DELETE("/:id", appHandlers.UserHandler.Delete)
			adminUsers.POST("/:id/regenerate-token", appHandlers.UserHandler.RegenerateToken)
			adminUsers.POST("/regenerate-tokens", appHandlers.UserHandler.RegenerateAllTokens)
			adminUsers.POST("/reset-password/:username", appHandlers.UserHandler.ResetPassword)
		}

		bans := admin.Group("/bans")
		{
			bans.GET("", appHandlers.BanHandler.List)
			bans.POST("/:id", appHandlers.BanHandler.Ban)
			bans.DELETE("/:id", appHandlers.BanHandler.Unban)
			bans.GET("/:id/reason", appHandlers.BanHandler.Reason)
		}

		logs := admin.Group("/logs")
		{
			logs.GET("", appHandlers.LogHandler.List)
			logs.GET("/unread-count", appHandlers.LogHandler.UnreadCount)
			logs.PUT("/:id/read", appHandlers.LogHandler.MarkRead)
			logs.PUT("/read-all", appHandlers.LogHandler.MarkAllRead)
			logs.GET("/api-access/:id", appHandlers.LogHandler.APIAccessLogs)
		}

		notifications := admin.Group("/notifications")
		{
			notifications.POST("/sent/:id", appHandlers.NotificationHandler.RecordSent)
			notifications.GET("/sent/:id", appHandlers.NotificationHandler.SentHistory)
		}
	}
}
