package repositories

import (
	"adminkit_backend/internal/models"

	"gorm.io/gorm"
)

// AuditRepository - вторичные append-only журналы: обращения к API
// и история отправленных уведомлений.
type AuditRepository interface {
	CreateAPIAccess(entry *models.APIAccessLog) error
	FindAPIAccessByUser(userID uint, limit, offset int) ([]models.APIAccessLog, error)

	CreateSentNotification(entry *models.SentNotificationLog) error
	FindSentByUser(userID uint, limit, offset int) ([]models.SentNotificationLog, error)
}

type AuditRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &AuditRepositoryImpl{db: db}
}

func (r *AuditRepositoryImpl) CreateAPIAccess(entry *models.APIAccessLog) error {
	return r.db.Create(entry).Error
}

func (r *AuditRepositoryImpl) FindAPIAccessByUser(userID uint, limit, offset int) ([]models.APIAccessLog, error) {
	var entries []models.APIAccessLog
	query := r.db.Where("user_id = ?", userID).Order("time DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&entries).Error
	return entries, err
}

func (r *AuditRepositoryImpl) CreateSentNotification(entry *models.SentNotificationLog) error {
	return r.db.Create(entry).Error
}

func (r *AuditRepositoryImpl) FindSentByUser(userID uint, limit, offset int) ([]models.SentNotificationLog, error) {
	var entries []models.SentNotificationLog
	query := r.db.Where("user_id = ?", userID).Order("time DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&entries).Error
	return entries, err
}
