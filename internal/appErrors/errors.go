package appErrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode - тип для кодов ошибок
type ErrorCode string

// AppError - основная структура ошибки приложения
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Конструктор
func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// С цепочкой ошибок
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

// Вспомогательные методы
func (e *AppError) WithDetails(details interface{}) *AppError {
	return &AppError{
		Code:     e.Code,
		Message:  e.Message,
		Details:  details,
		Err:      e.Err,
		HTTPCode: e.HTTPCode,
	}
}

// Для маршалинга в JSON
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is - обертка над стандартной функцией errors.Is
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As - обертка над стандартной функцией errors.As
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Предопределенные ошибки
var (
	// Аутентификация
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid username or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrAPIAccessDenied    = New(CodeAPIAccessDenied, "User is not allowed to use the API", http.StatusForbidden)
	ErrSessionCorrupted   = New(CodeSessionCorrupted, "Session data could not be decrypted", http.StatusInternalServerError)

	// Пользователи
	ErrUserNotFound    = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrUsernameTaken   = New(CodeUsernameTaken, "Username already exists", http.StatusConflict)
	ErrUsernameBlocked = New(CodeUsernameBlocked, "Username is reserved", http.StatusForbidden)
	ErrInvalidUserRole = New(CodeInvalidUserRole, "Invalid user role", http.StatusBadRequest)

	// Баны
	ErrUserBanned    = New(CodeUserBanned, "User account banned", http.StatusForbidden)
	ErrAlreadyBanned = New(CodeAlreadyBanned, "User is already banned", http.StatusBadRequest)
	ErrNotBanned     = New(CodeNotBanned, "User is not banned", http.StatusBadRequest)

	// Логи и подписки
	ErrLogNotFound        = New(CodeLogNotFound, "Log entry not found", http.StatusNotFound)
	ErrSubscriberNotFound = New(CodeSubscriberNotFound, "Notification subscriber not found", http.StatusNotFound)

	// Гейты
	ErrMaintenanceMode = New(CodeMaintenanceMode, "Service is under maintenance", http.StatusServiceUnavailable)
	ErrFeatureDisabled = New(CodeFeatureDisabled, "Feature is disabled", http.StatusForbidden)

	// Валидация
	ErrValidationFailed = New(CodeValidationFailed, "Validation failed", http.StatusBadRequest)
)

// Функции-помощники для создания ошибок с деталями
func ValidationError(details interface{}) *AppError {
	return ErrValidationFailed.WithDetails(details)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewInternalError(message string) *AppError {
	return New(CodeInternalError, message, http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeUserNotFound, message, http.StatusNotFound)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
