package repositories

import (
	"errors"

	"adminkit_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSubscriberNotFound = errors.New("notification subscriber not found")

type SubscriberRepository interface {
	Create(sub *models.NotificationSubscriber) error
	FindByID(id uint) (*models.NotificationSubscriber, error)
	FindOpenByUser(userID uint) ([]models.NotificationSubscriber, error)
	FindByEndpoint(userID uint, endpoint string) (*models.NotificationSubscriber, error)
	Update(sub *models.NotificationSubscriber) error
	// CloseAllForUser закрывает все открытые подписки пользователя
	// (бан, удаление аккаунта, endpoint вернул 410 Gone).
	CloseAllForUser(userID uint) error
}

type SubscriberRepositoryImpl struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) SubscriberRepository {
	return &SubscriberRepositoryImpl{db: db}
}

func (r *SubscriberRepositoryImpl) Create(sub *models.NotificationSubscriber) error {
	return r.db.Create(sub).Error
}

func (r *SubscriberRepositoryImpl) FindByID(id uint) (*models.NotificationSubscriber, error) {
	var sub models.NotificationSubscriber
	err := r.db.First(&sub, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriberRepositoryImpl) FindOpenByUser(userID uint) ([]models.NotificationSubscriber, error) {
	var subs []models.NotificationSubscriber
	err := r.db.Where("user_id = ? AND status = ?", userID, models.SubscriberStatusOpen).
		Find(&subs).Error
	return subs, err
}

func (r *SubscriberRepositoryImpl) FindByEndpoint(userID uint, endpoint string) (*models.NotificationSubscriber, error) {
	var sub models.NotificationSubscriber
	err := r.db.Where("user_id = ? AND endpoint = ?", userID, endpoint).First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriberNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriberRepositoryImpl) Update(sub *models.NotificationSubscriber) error {
	return r.db.Save(sub).Error
}

func (r *SubscriberRepositoryImpl) CloseAllForUser(userID uint) error {
	return r.db.Model(&models.NotificationSubscriber{}).
		Where("user_id = ? AND status = ?", userID, models.SubscriberStatusOpen).
		Update("status", models.SubscriberStatusClosed).Error
}
