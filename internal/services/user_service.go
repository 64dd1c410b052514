package services

import (
	"context"
	"fmt"

	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/repositories"
	"adminkit_backend/internal/security"
)

type UserService interface {
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByToken(token string) (*models.User, error)
	Exists(username string) (bool, error)
	List(page, limit int) ([]models.User, int64, error)

	UpdateRole(ctx context.Context, rc RequestContext, id uint, role models.UserRole) error
	UpdateUsername(ctx context.Context, rc RequestContext, id uint, username string) error
	UpdatePassword(ctx context.Context, rc RequestContext, id uint, password string) error
	UpdateProfilePicture(id uint, picture string) error
	SetAPIAccess(ctx context.Context, rc RequestContext, id uint, allowed bool) error
	Delete(ctx context.Context, rc RequestContext, id uint) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	auth     AuthService
	logs     LogService
	hasher   *security.Hasher
}

func NewUserService(
	userRepo repositories.UserRepository,
	auth AuthService,
	logs LogService,
	hasher *security.Hasher,
) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
		auth:     auth,
		logs:     logs,
		hasher:   hasher,
	}
}

func (s *UserServiceImpl) GetByID(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) GetByToken(token string) (*models.User, error) {
	user, err := s.userRepo.FindByToken(token)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return nil, appErrors.ErrUserNotFound
		}
		return nil, appErrors.InternalError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) Exists(username string) (bool, error) {
	exists, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return false, appErrors.InternalError(err)
	}
	return exists, nil
}

func (s *UserServiceImpl) List(page, limit int) ([]models.User, int64, error) {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	users, err := s.userRepo.FindAll(limit, (page-1)*limit)
	if err != nil {
		return nil, 0, appErrors.InternalError(err)
	}
	total, err := s.userRepo.CountAll()
	if err != nil {
		return nil, 0, appErrors.InternalError(err)
	}
	return users, total, nil
}

func (s *UserServiceImpl) UpdateRole(ctx context.Context, rc RequestContext, id uint, role models.UserRole) error {
	valid := false
	for _, r := range models.ValidUserRoles {
		if r == role {
			valid = true
			break
		}
	}
	if !valid {
		return appErrors.ErrInvalidUserRole
	}

	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return appErrors.InternalError(err)
	}

	return s.logs.Log(ctx, rc, id, "user",
		fmt.Sprintf("Role of %s changed to %s", user.Username, role),
		models.LogLevelWarning)
}

func (s *UserServiceImpl) UpdateUsername(ctx context.Context, rc RequestContext, id uint, username string) error {
	if s.auth.IsUsernameBlocked(username) {
		return appErrors.ErrUsernameBlocked
	}

	taken, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return appErrors.InternalError(err)
	}
	if taken {
		return appErrors.ErrUsernameTaken
	}

	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	old := user.Username
	user.Username = username
	if err := s.userRepo.Update(user); err != nil {
		if appErrors.Is(err, repositories.ErrUserAlreadyExists) {
			return appErrors.ErrUsernameTaken
		}
		return appErrors.InternalError(err)
	}

	return s.logs.Log(ctx, rc, id, "user",
		fmt.Sprintf("Username changed: %s -> %s", old, username),
		models.LogLevelWarning)
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, rc RequestContext, id uint, password string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return appErrors.InternalError(err)
	}

	user.Password = hash
	if err := s.userRepo.Update(user); err != nil {
		return appErrors.InternalError(err)
	}

	return s.logs.Log(ctx, rc, id, "user",
		fmt.Sprintf("Password of %s changed", user.Username),
		models.LogLevelWarning)
}

func (s *UserServiceImpl) UpdateProfilePicture(id uint, picture string) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if picture == "" {
		picture = models.DefaultProfilePicture
	}
	user.ProfilePicture = picture
	if err := s.userRepo.Update(user); err != nil {
		return appErrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) SetAPIAccess(ctx context.Context, rc RequestContext, id uint, allowed bool) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	user.AllowAPIAccess = allowed
	if err := s.userRepo.Update(user); err != nil {
		return appErrors.InternalError(err)
	}

	return s.logs.Log(ctx, rc, id, "user",
		fmt.Sprintf("API access of %s set to %t", user.Username, allowed),
		models.LogLevelWarning)
}

// Delete удаляет пользователя. Принадлежащие ему строки чистит база
// по ON DELETE правилам: каскад для большинства, SET NULL для Log.user
// и Banned.bannedBy.
func (s *UserServiceImpl) Delete(ctx context.Context, rc RequestContext, id uint) error {
	user, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(id); err != nil {
		return appErrors.InternalError(err)
	}

	return s.logs.Log(ctx, rc, 0, "user",
		fmt.Sprintf("User %s deleted", user.Username),
		models.LogLevelWarning)
}
