package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	BanService          BanService
	LogService          LogService
	NotificationService NotificationService
}
