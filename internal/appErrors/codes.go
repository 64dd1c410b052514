package appErrors

// Коды ошибок сгруппированные по доменам
const (
	// Аутентификация и авторизация
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeAPIAccessDenied    ErrorCode = "API_ACCESS_DENIED"
	CodeSessionCorrupted   ErrorCode = "SESSION_CORRUPTED"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"
	CodeUsernameBlocked  ErrorCode = "USERNAME_BLOCKED"

	// Ресурсы
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeLogNotFound        ErrorCode = "LOG_NOT_FOUND"
	CodeSubscriberNotFound ErrorCode = "SUBSCRIBER_NOT_FOUND"

	// Бизнес-логика
	CodeUsernameTaken    ErrorCode = "USERNAME_TAKEN"
	CodeUserBanned       ErrorCode = "USER_BANNED"
	CodeAlreadyBanned    ErrorCode = "ALREADY_BANNED"
	CodeNotBanned        ErrorCode = "NOT_BANNED"
	CodeMaintenanceMode  ErrorCode = "MAINTENANCE_MODE"
	CodeFeatureDisabled  ErrorCode = "FEATURE_DISABLED"
	CodeCannotModifySelf ErrorCode = "CANNOT_MODIFY_SELF"

	// Системные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"
)
