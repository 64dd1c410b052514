package repositories

import (
	"errors"

	"adminkit_backend/internal/models"

	"gorm.io/gorm"
)

var ErrBanNotFound = errors.New("active ban not found")

type BanRepository interface {
	Create(ban *models.Banned) error
	// FindActiveByUserID возвращает текущий активный бан пользователя.
	FindActiveByUserID(userID uint) (*models.Banned, error)
	HasActiveBan(userID uint) (bool, error)
	// Deactivate переводит активные баны пользователя в "inactive".
	// Строки не удаляются - история банов сохраняется.
	Deactivate(userID uint) error
	FindBannedUsers(limit, offset int) ([]models.User, error)
	CountActive() (int64, error)
}

type BanRepositoryImpl struct {
	db *gorm.DB
}

func NewBanRepository(db *gorm.DB) BanRepository {
	return &BanRepositoryImpl{db: db}
}

func (r *BanRepositoryImpl) Create(ban *models.Banned) error {
	return r.db.Create(ban).Error
}

func (r *BanRepositoryImpl) FindActiveByUserID(userID uint) (*models.Banned, error) {
	var ban models.Banned
	err := r.db.Where("user_id = ? AND status = ?", userID, models.BanStatusActive).
		Order("time DESC").
		First(&ban).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBanNotFound
		}
		return nil, err
	}
	return &ban, nil
}

func (r *BanRepositoryImpl) HasActiveBan(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Banned{}).
		Where("user_id = ? AND status = ?", userID, models.BanStatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *BanRepositoryImpl) Deactivate(userID uint) error {
	return r.db.Model(&models.Banned{}).
		Where("user_id = ? AND status = ?", userID, models.BanStatusActive).
		Update("status", models.BanStatusInactive).Error
}

func (r *BanRepositoryImpl) FindBannedUsers(limit, offset int) ([]models.User, error) {
	var users []models.User
	query := r.db.
		Joins("JOIN banneds ON banneds.user_id = users.id AND banneds.status = ?", models.BanStatusActive).
		Distinct().
		Order("users.id")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&users).Error
	return users, err
}

func (r *BanRepositoryImpl) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Banned{}).
		Where("status = ?", models.BanStatusActive).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}
