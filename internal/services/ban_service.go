package services

import (
	"context"
	"fmt"
	"time"

	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/repositories"
	"adminkit_backend/internal/session"
)

const defaultBanReason = "no-reason"

type BanService interface {
	// Ban создает активную запись бана. Инициатор берется из текущей
	// сессии; системные баны (консоль, без сессии) остаются без автора.
	Ban(ctx context.Context, rc RequestContext, sess *session.Session, userID uint, reason string) error
	Unban(ctx context.Context, rc RequestContext, sess *session.Session, userID uint) error
	IsBanned(userID uint) (bool, error)
	BanReason(userID uint) (string, bool, error)
	BannedUsers(page, limit int) ([]models.User, int64, error)
}

type BanServiceImpl struct {
	banRepo        repositories.BanRepository
	userRepo       repositories.UserRepository
	subscriberRepo repositories.SubscriberRepository
	auth           AuthService
	logs           LogService
}

func NewBanService(
	banRepo repositories.BanRepository,
	userRepo repositories.UserRepository,
	subscriberRepo repositories.SubscriberRepository,
	auth AuthService,
	logs LogService,
) BanService {
	return &BanServiceImpl{
		banRepo:        banRepo,
		userRepo:       userRepo,
		subscriberRepo: subscriberRepo,
		auth:           auth,
		logs:           logs,
	}
}

// Ban банит пользователя. Повторный бан уже забаненного отклоняется -
// двойных активных записей не бывает. Открытые push-подписки
// закрываются: забаненный уведомлений не получает.
func (s *BanServiceImpl) Ban(ctx context.Context, rc RequestContext, sess *session.Session, userID uint, reason string) error {
	if reason == "" {
		reason = defaultBanReason
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return appErrors.ErrUserNotFound
		}
		return appErrors.InternalError(err)
	}

	banned, err := s.banRepo.HasActiveBan(userID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if banned {
		return appErrors.ErrAlreadyBanned
	}

	var issuerID *uint
	if sess != nil {
		adminID, err := s.auth.LoggedUserID(ctx, sess)
		if err != nil {
			return err
		}
		if adminID != 0 {
			issuerID = &adminID
		}
	}

	ban := &models.Banned{
		Reason:     reason,
		Status:     models.BanStatusActive,
		Time:       time.Now(),
		UserID:     userID,
		BannedByID: issuerID,
	}
	if err := s.banRepo.Create(ban); err != nil {
		return appErrors.InternalError(err)
	}

	if err := s.subscriberRepo.CloseAllForUser(userID); err != nil {
		return appErrors.InternalError(err)
	}

	if err := s.logs.Log(ctx, rc, userID, "ban",
		fmt.Sprintf("User %s banned. Reason: %s", user.Username, reason),
		models.LogLevelWarning); err != nil {
		return err
	}

	return nil
}

// Unban переводит активный бан в "inactive". История сохраняется,
// строки не удаляются. No-op если пользователь не забанен.
func (s *BanServiceImpl) Unban(ctx context.Context, rc RequestContext, sess *session.Session, userID uint) error {
	banned, err := s.banRepo.HasActiveBan(userID)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if !banned {
		return nil
	}

	if err := s.banRepo.Deactivate(userID); err != nil {
		return appErrors.InternalError(err)
	}

	if err := s.logs.Log(ctx, rc, userID, "ban",
		fmt.Sprintf("User #%d unbanned", userID),
		models.LogLevelWarning); err != nil {
		return err
	}

	return nil
}

// IsBanned: пользователь забанен, если есть хотя бы одна активная запись.
func (s *BanServiceImpl) IsBanned(userID uint) (bool, error) {
	banned, err := s.banRepo.HasActiveBan(userID)
	if err != nil {
		return false, appErrors.InternalError(err)
	}
	return banned, nil
}

// BanReason возвращает причину текущего активного бана
// (второй результат false - пользователь не забанен).
func (s *BanServiceImpl) BanReason(userID uint) (string, bool, error) {
	ban, err := s.banRepo.FindActiveByUserID(userID)
	if err != nil {
		if appErrors.Is(err, repositories.ErrBanNotFound) {
			return "", false, nil
		}
		return "", false, appErrors.InternalError(err)
	}
	return ban.Reason, true, nil
}

func (s *BanServiceImpl) BannedUsers(page, limit int) ([]models.User, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	users, err := s.banRepo.FindBannedUsers(limit, (page-1)*limit)
	if err != nil {
		return nil, 0, appErrors.InternalError(err)
	}
	total, err := s.banRepo.CountActive()
	if err != nil {
		return nil, 0, appErrors.InternalError(err)
	}
	return users, total, nil
}
