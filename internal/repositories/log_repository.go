package repositories

import (
	"errors"

	"adminkit_backend/internal/models"

	"gorm.io/gorm"
)

var ErrLogNotFound = errors.New("log entry not found")

type LogFilter struct {
	Level  int // 0 = без фильтра
	Status models.LogStatus
	Name   string
	Page   int
	Limit  int
}

type LogRepository interface {
	Create(entry *models.Log) error
	FindByID(id uint) (*models.Log, error)
	FindWithFilter(filter LogFilter) ([]models.Log, int64, error)
	UpdateStatus(id uint, status models.LogStatus) error
	MarkAllRead() (int64, error)
	CountByStatus(status models.LogStatus) (int64, error)
}

type LogRepositoryImpl struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &LogRepositoryImpl{db: db}
}

func (r *LogRepositoryImpl) Create(entry *models.Log) error {
	return r.db.Create(entry).Error
}

func (r *LogRepositoryImpl) FindByID(id uint) (*models.Log, error) {
	var entry models.Log
	err := r.db.First(&entry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *LogRepositoryImpl) FindWithFilter(filter LogFilter) ([]models.Log, int64, error) {
	query := r.db.Model(&models.Log{})

	if filter.Level > 0 {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	var entries []models.Log
	err := query.
		Order("time DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&entries).Error
	return entries, total, err
}

func (r *LogRepositoryImpl) UpdateStatus(id uint, status models.LogStatus) error {
	result := r.db.Model(&models.Log{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLogNotFound
	}
	return nil
}

func (r *LogRepositoryImpl) MarkAllRead() (int64, error) {
	result := r.db.Model(&models.Log{}).
		Where("status = ?", models.LogStatusUnread).
		Update("status", models.LogStatusRead)
	return result.RowsAffected, result.Error
}

func (r *LogRepositoryImpl) CountByStatus(status models.LogStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Log{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
