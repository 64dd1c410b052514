package repositories

import (
	"errors"
	"strings"
	"time"

	"adminkit_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	FindByID(id uint) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByToken(token string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uint) error

	ExistsByUsername(username string) (bool, error)
	ExistsByToken(token string) (bool, error)

	UpdateToken(id uint, token string) error
	UpdateLoginInfo(id uint, ip, userAgent string, loginTime time.Time) error

	FindAll(limit, offset int) ([]models.User, error)
	All() ([]models.User, error)
	CountAll() (int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

// isDuplicateKey распознает нарушение уникального индекса.
// Пред-проверки в сервисах не атомарны против гонок - уникальный
// индекс в базе является страховкой, и его срабатывание переводится
// в ту же ошибку "already exists".
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key") ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}

func (r *UserRepositoryImpl) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "user_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) Delete(id uint) error {
	result := r.db.Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) ExistsByToken(token string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("user_token = ?", token).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) UpdateToken(id uint, token string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("user_token", token)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateLoginInfo(id uint, ip, userAgent string, loginTime time.Time) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"ip_address":      ip,
		"user_agent":      userAgent,
		"last_login_time": loginTime,
	}).Error
}

func (r *UserRepositoryImpl) FindAll(limit, offset int) ([]models.User, error) {
	var users []models.User
	query := r.db.Order("id")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	err := query.Find(&users).Error
	return users, err
}

// All возвращает всех пользователей без пагинации.
// Используется списком онлайн-пользователей и массовой ротацией токенов.
func (r *UserRepositoryImpl) All() ([]models.User, error) {
	return r.FindAll(0, 0)
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
