package services

import (
	"context"
	"time"

	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/repositories"
)

type NotificationService interface {
	// Subscribe регистрирует push-endpoint пользователя. Повторная
	// подписка того же endpoint переоткрывает существующую строку.
	Subscribe(ctx context.Context, userID uint, endpoint, publicKey, authToken string) (*models.NotificationSubscriber, error)
	// Close закрывает все открытые подписки пользователя.
	Close(ctx context.Context, userID uint) error
	// CloseEndpoint закрывает одну подписку (endpoint вернул 410 Gone).
	CloseEndpoint(ctx context.Context, userID uint, endpoint string) error
	OpenSubscriptions(userID uint) ([]models.NotificationSubscriber, error)

	// RecordSent фиксирует факт отправки уведомления в истории.
	// Сама доставка - забота внешнего транспорта.
	RecordSent(ctx context.Context, userID uint, title, message string) error
	SentHistory(userID uint, limit, offset int) ([]models.SentNotificationLog, error)
}

type NotificationServiceImpl struct {
	subscriberRepo repositories.SubscriberRepository
	auditRepo      repositories.AuditRepository
}

func NewNotificationService(
	subscriberRepo repositories.SubscriberRepository,
	auditRepo repositories.AuditRepository,
) NotificationService {
	return &NotificationServiceImpl{
		subscriberRepo: subscriberRepo,
		auditRepo:      auditRepo,
	}
}

func (s *NotificationServiceImpl) Subscribe(ctx context.Context, userID uint, endpoint, publicKey, authToken string) (*models.NotificationSubscriber, error) {
	existing, err := s.subscriberRepo.FindByEndpoint(userID, endpoint)
	if err == nil {
		existing.PublicKey = publicKey
		existing.AuthToken = authToken
		existing.Status = models.SubscriberStatusOpen
		existing.SubscribedTime = time.Now()
		if err := s.subscriberRepo.Update(existing); err != nil {
			return nil, appErrors.InternalError(err)
		}
		return existing, nil
	}
	if !appErrors.Is(err, repositories.ErrSubscriberNotFound) {
		return nil, appErrors.InternalError(err)
	}

	sub := &models.NotificationSubscriber{
		Endpoint:       endpoint,
		PublicKey:      publicKey,
		AuthToken:      authToken,
		SubscribedTime: time.Now(),
		Status:         models.SubscriberStatusOpen,
		UserID:         userID,
	}
	if err := s.subscriberRepo.Create(sub); err != nil {
		return nil, appErrors.InternalError(err)
	}
	return sub, nil
}

func (s *NotificationServiceImpl) Close(ctx context.Context, userID uint) error {
	if err := s.subscriberRepo.CloseAllForUser(userID); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) CloseEndpoint(ctx context.Context, userID uint, endpoint string) error {
	sub, err := s.subscriberRepo.FindByEndpoint(userID, endpoint)
	if err != nil {
		if appErrors.Is(err, repositories.ErrSubscriberNotFound) {
			return appErrors.ErrSubscriberNotFound
		}
		return appErrors.InternalError(err)
	}

	sub.Status = models.SubscriberStatusClosed
	if err := s.subscriberRepo.Update(sub); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) OpenSubscriptions(userID uint) ([]models.NotificationSubscriber, error) {
	subs, err := s.subscriberRepo.FindOpenByUser(userID)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return subs, nil
}

func (s *NotificationServiceImpl) RecordSent(ctx context.Context, userID uint, title, message string) error {
	entry := &models.SentNotificationLog{
		Title:   title,
		Message: message,
		Time:    time.Now(),
		UserID:  userID,
	}
	if err := s.auditRepo.CreateSentNotification(entry); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *NotificationServiceImpl) SentHistory(userID uint, limit, offset int) ([]models.SentNotificationLog, error) {
	entries, err := s.auditRepo.FindSentByUser(userID, limit, offset)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	return entries, nil
}
