package models

type UserRole string
type BanStatus string
type LogStatus string
type SubscriberStatus string

const (
	UserRoleUser      UserRole = "USER"
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleDeveloper UserRole = "DEVELOPER"
	UserRoleOwner     UserRole = "OWNER"

	BanStatusActive   BanStatus = "active"
	BanStatusInactive BanStatus = "inactive"

	// Исторические значения статусов лога сохранены как есть.
	LogStatusUnread LogStatus = "UNREADED"
	LogStatusRead   LogStatus = "READED"

	SubscriberStatusOpen   SubscriberStatus = "open"
	SubscriberStatusClosed SubscriberStatus = "closed"
)

// Уровни лога: меньше = серьезнее.
const (
	LogLevelCritical = 1
	LogLevelWarning  = 2
	LogLevelNotice   = 3
	LogLevelInfo     = 4
)

// ValidUserRoles - канонический список ролей (роль хранится строкой).
var ValidUserRoles = []UserRole{UserRoleUser, UserRoleAdmin, UserRoleDeveloper, UserRoleOwner}

// IsElevated возвращает true для ролей с доступом к админ-панели.
func (r UserRole) IsElevated() bool {
	return r == UserRoleAdmin || r == UserRoleDeveloper || r == UserRoleOwner
}
