package handlers

import (
	"adminkit_backend/internal/services"
	"adminkit_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	BanHandler          *BanHandler
	LogHandler          *LogHandler
	NotificationHandler *NotificationHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.AuthService),
		UserHandler:         NewUserHandler(base, sc.UserService, sc.AuthService),
		BanHandler:          NewBanHandler(base, sc.BanService),
		LogHandler:          NewLogHandler(base, sc.LogService),
		NotificationHandler: NewNotificationHandler(base, sc.NotificationService, sc.AuthService),
	}
}
