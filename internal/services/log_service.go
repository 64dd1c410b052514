package services

import (
	"context"
	"strings"
	"time"

	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/config"
	"adminkit_backend/internal/logger"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/repositories"
	"adminkit_backend/internal/session"

	"github.com/golang-jwt/jwt/v5"
)

type LogService interface {
	// Log пишет запись аудита с учетом всех фильтров подавления.
	// Подавленная запись - не ошибка: метод молча возвращает nil.
	Log(ctx context.Context, rc RequestContext, userID uint, name, message string, level int) error

	// IsAntiLogActive проверяет операторскую куку подавления аудита.
	IsAntiLogActive(cookies session.Cookies) bool

	GetLogs(filter repositories.LogFilter) ([]models.Log, int64, error)
	MarkRead(id uint) error
	MarkAllRead() (int64, error)
	UnreadCount() (int64, error)

	LogAPIAccess(ctx context.Context, rc RequestContext, userID uint) error
	GetAPIAccessLogs(userID uint, limit, offset int) ([]models.APIAccessLog, error)
}

type LogServiceImpl struct {
	logRepo   repositories.LogRepository
	auditRepo repositories.AuditRepository
	cfg       *config.Config
}

func NewLogService(logRepo repositories.LogRepository, auditRepo repositories.AuditRepository, cfg *config.Config) LogService {
	return &LogServiceImpl{
		logRepo:   logRepo,
		auditRepo: auditRepo,
		cfg:       cfg,
	}
}

// Log - запись в аудит. Последовательность фильтров:
//  1. "Connection refused" в тексте - дроп (иначе падение инфраструктуры
//     рекурсивно порождает лавину записей о самом себе);
//  2. anti-log режим активен - дроп;
//  3. запись в БД глобально выключена конфигом - дроп;
//  4. уровень менее серьезен, чем настроенный порог - дроп;
//  5. иначе - персистим со статусом UNREADED.
func (s *LogServiceImpl) Log(ctx context.Context, rc RequestContext, userID uint, name, message string, level int) error {
	if strings.Contains(message, "Connection refused") {
		return nil
	}
	if rc.AntiLog {
		return nil
	}
	if !s.cfg.Logging.DBEnabled {
		return nil
	}
	// Меньше = серьезнее: level выше порога значит "недостаточно важно"
	if level > s.cfg.Logging.Level {
		return nil
	}

	entry := &models.Log{
		Name:      name,
		Message:   message,
		Time:      time.Now(),
		UserAgent: rc.UserAgentOrUnknown(),
		IPAddress: rc.IPOrUnknown(),
		Level:     level,
		Status:    models.LogStatusUnread,
	}
	if userID != 0 {
		entry.UserID = &userID
	}

	if err := s.logRepo.Create(entry); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

// IsAntiLogActive - anti-log кука содержит HMAC-подписанный токен;
// режим активен только при валидной подписи настроенным секретом.
func (s *LogServiceImpl) IsAntiLogActive(cookies session.Cookies) bool {
	if s.cfg.Security.AntiLogSecret == "" {
		return false
	}

	raw, ok := cookies.Get(s.cfg.Security.AntiLogCookieName)
	if !ok || raw == "" {
		return false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Security.AntiLogSecret), nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	active, _ := claims["antilog"].(bool)
	return active
}

func (s *LogServiceImpl) GetLogs(filter repositories.LogFilter) ([]models.Log, int64, error) {
	entries, total, err := s.logRepo.FindWithFilter(filter)
	if err != nil {
		return nil, 0, appErrors.InternalError(err)
	}
	return entries, total, nil
}

// MarkRead - переход UNREADED -> READED для одной записи.
// READED терминален, обратного перехода нет.
func (s *LogServiceImpl) MarkRead(id uint) error {
	if err := s.logRepo.UpdateStatus(id, models.LogStatusRead); err != nil {
		if appErrors.Is(err, repositories.ErrLogNotFound) {
			return appErrors.ErrLogNotFound
		}
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *LogServiceImpl) MarkAllRead() (int64, error) {
	updated, err := s.logRepo.MarkAllRead()
	if err != nil {
		return 0, appErrors.InternalError(err)
	}
	return updated, nil
}

func (s *LogServiceImpl) UnreadCount() (int64, error) {
	count, err := s.logRepo.CountByStatus(models.LogStatusUnread)
	if err != nil {
		return 0, appErrors.InternalError(err)
	}
	return count, nil
}

// LogAPIAccess пишет строку в отдельный журнал API-обращений.
// Фильтры подавления на него не распространяются.
func (s *LogServiceImpl) LogAPIAccess(ctx context.Context, rc RequestContext, userID uint) error {
	entry := &models.APIAccessLog{
		Time:      time.Now(),
		IPAddress: rc.IPOrUnknown(),
		UserAgent: rc.UserAgentOrUnknown(),
		UserID:    userID,
	}
	if err := s.auditRepo.CreateAPIAccess(entry); err != nil {
		logger.CtxWithError(ctx, "failed to write api access log", err, "user_id", userID)
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *LogServiceImpl) GetAPIAccessLogs(userID uint, limit, offset int) ([]models.APIAccessLog, error) {
	entries, err := s.auditRepo.FindAPIAccessByUser(userID, limit, offset)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return entries, nil
}
