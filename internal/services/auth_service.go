package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/cache"
	"adminkit_backend/internal/config"
	"adminkit_backend/internal/logger"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/repositories"
	"adminkit_backend/internal/security"
	"adminkit_backend/internal/session"
	"adminkit_backend/internal/utils"
)

const (
	onlineKeyPrefix = "online_user_"
	onlineValue     = "online"

	UserStatusOnline  = "online"
	UserStatusOffline = "offline"

	rememberCookieTTL = 365 * 24 * time.Hour
)

// BulkResult - структурированный результат массовой операции.
// Возвращается вместо ошибки, чтобы вызывающий мог показать частичный
// контекст (сколько успело провернуться до сбоя).
type BulkResult struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message"`
}

type AuthService interface {
	IsUsernameBlocked(username string) bool
	Register(ctx context.Context, rc RequestContext, username, password string) (*models.User, error)
	GenerateUserToken(length int) (string, error)

	CanLogin(ctx context.Context, rc RequestContext, username, password string) bool
	Login(ctx context.Context, rc RequestContext, sess *session.Session, cookies session.Cookies, username, password string, remember bool) error
	Logout(ctx context.Context, rc RequestContext, sess *session.Session, cookies session.Cookies) error

	IsUserLoggedIn(ctx context.Context, sess *session.Session) (bool, error)
	LoggedUserID(ctx context.Context, sess *session.Session) (uint, error)
	LoggedUserToken(ctx context.Context, sess *session.Session) (string, error)
	LoggedUsername(ctx context.Context, sess *session.Session) (string, error)
	LoggedUser(ctx context.Context, sess *session.Session) (*models.User, error)

	ResetUserPassword(ctx context.Context, rc RequestContext, username string) (string, error)
	RegenerateAllTokens(ctx context.Context, rc RequestContext) BulkResult
	RegenerateUserToken(ctx context.Context, rc RequestContext, userID uint) (bool, error)

	AuthenticateWithAPIKey(ctx context.Context, rc RequestContext, sess *session.Session, token string) (bool, error)
	AuthenticateWithRememberToken(ctx context.Context, rc RequestContext, sess *session.Session, token string) (bool, error)

	OnlineUsers(ctx context.Context) ([]models.User, error)
	UserStatus(ctx context.Context, userID uint) string
	CacheOnlineUser(ctx context.Context, userID uint)
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
	logs     LogService
	hasher   *security.Hasher
	cache    cache.Cache
	mailer   *utils.EmailSender
	cfg      *config.Config

	blockedUsernames map[string]bool
}

func NewAuthService(
	userRepo repositories.UserRepository,
	logs LogService,
	hasher *security.Hasher,
	cacheStore cache.Cache,
	mailer *utils.EmailSender,
	cfg *config.Config,
) AuthService {
	blocked := make(map[string]bool)
	for _, name := range config.LoadBlockedUsernames(cfg.App.BlockedUsernamesFile) {
		blocked[strings.ToLower(name)] = true
	}

	return &AuthServiceImpl{
		userRepo:         userRepo,
		logs:             logs,
		hasher:           hasher,
		cache:            cacheStore,
		mailer:           mailer,
		cfg:              cfg,
		blockedUsernames: blocked,
	}
}

// IsUsernameBlocked - проверка по стоп-листу зарезервированных имен.
func (s *AuthServiceImpl) IsUsernameBlocked(username string) bool {
	return s.blockedUsernames[strings.ToLower(username)]
}

// Register создает пользователя с ролью USER, выключенным API-доступом
// и свежим уникальным токеном.
//
// Пред-проверка занятости имени и создание не атомарны: гонку двух
// одновременных регистраций ловит уникальный индекс в базе, его
// срабатывание переводится в ту же ошибку "already exists".
func (s *AuthServiceImpl) Register(ctx context.Context, rc RequestContext, username, password string) (*models.User, error) {
	if s.IsUsernameBlocked(username) {
		return nil, appErrors.ErrUsernameBlocked
	}

	taken, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}
	if taken {
		return nil, appErrors.ErrUsernameTaken
	}

	token, err := s.GenerateUserToken(s.cfg.Security.TokenLength)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	now := time.Now()
	user := &models.User{
		Username:       username,
		Password:       hash,
		Role:           models.UserRoleUser,
		IPAddress:      rc.IPOrUnknown(),
		UserAgent:      rc.UserAgentOrUnknown(),
		RegisterTime:   now,
		LastLoginTime:  now,
		UserToken:      token,
		AllowAPIAccess: false,
		ProfilePicture: models.DefaultProfilePicture,
	}

	if err := s.userRepo.Create(user); err != nil {
		if appErrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, appErrors.ErrUsernameTaken
		}
		return nil, appErrors.InternalError(err)
	}

	s.audit(ctx, rc, user.ID, "auth",
		fmt.Sprintf("New user registered! Username: %s", username),
		models.LogLevelCritical)

	return user, nil
}

// GenerateUserToken генерирует токен и перепроверяет его уникальность
// по базе, повторяя до свободного. Цикл без верхней границы: hex-токен
// длины 32 дает пространство, в котором повтор практически невозможен.
func (s *AuthServiceImpl) GenerateUserToken(length int) (string, error) {
	for {
		token, err := security.RandomToken(length)
		if err != nil {
			return "", appErrors.InternalError(err)
		}

		exists, err := s.userRepo.ExistsByToken(token)
		if err != nil {
			return "", appErrors.InternalError(err)
		}
		if !exists {
			return token, nil
		}
	}
}

// CanLogin проверяет учетные данные. Любой провал (нет пользователя ИЛИ
// неверный пароль) пишет ровно одну CRITICAL запись аудита и дает false.
//
// Запись содержит предъявленный пароль открытым текстом; в структурный
// slog-вывод пароль не попадает.
func (s *AuthServiceImpl) CanLogin(ctx context.Context, rc RequestContext, username, password string) bool {
	user, err := s.userRepo.FindByUsername(username)
	if err == nil && s.hasher.VerifyPassword(password, user.Password) {
		return true
	}

	s.audit(ctx, rc, 0, "auth",
		fmt.Sprintf("Invalid login! Username: %s Password: %s", username, password),
		models.LogLevelCritical)
	logger.CtxWarn(ctx, "invalid login attempt", "username", username)

	return false
}

// Login устанавливает сессию: шифрованные user-token и user-identifier.
// При remember дополнительно ставится кука на год с токеном открытым
// текстом - по ней AutoLogin восстанавливает сессию между рестартами
// браузера.
func (s *AuthServiceImpl) Login(ctx context.Context, rc RequestContext, sess *session.Session, cookies session.Cookies, username, password string, remember bool) error {
	if !s.CanLogin(ctx, rc, username, password) {
		return appErrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return appErrors.InternalError(err)
	}

	if err := sess.Set(ctx, session.KeyUserToken, user.UserToken); err != nil {
		return err
	}
	if err := sess.Set(ctx, session.KeyUserIdentifier, strconv.FormatUint(uint64(user.ID), 10)); err != nil {
		return err
	}

	if remember {
		cookies.Set(s.cfg.Security.RememberCookieName, user.UserToken, time.Now().Add(rememberCookieTTL))
	}

	if err := s.userRepo.UpdateLoginInfo(user.ID, rc.IPOrUnknown(), rc.UserAgentOrUnknown(), time.Now()); err != nil {
		return appErrors.InternalError(err)
	}

	s.audit(ctx, rc, user.ID, "auth",
		fmt.Sprintf("User logged in! Username: %s", username),
		models.LogLevelCritical)

	// Алерт администратору, если аудит не подавлен anti-log режимом
	if !rc.AntiLog && s.mailer != nil {
		if err := s.mailer.SendAdminAlert(
			"New login: "+username,
			fmt.Sprintf("User <b>%s</b> logged in from %s", username, rc.IPOrUnknown()),
		); err != nil {
			logger.CtxWithError(ctx, "failed to send login alert", err, "username", username)
		}
	}

	return nil
}

// IsUserLoggedIn: в сессии есть user-token И этот токен прямо сейчас
// резолвится в пользователя. Нечитаемое значение сессии - внутренняя
// ошибка (сессию к этому моменту уже уничтожил session.Value).
func (s *AuthServiceImpl) IsUserLoggedIn(ctx context.Context, sess *session.Session) (bool, error) {
	if !sess.Has(ctx, session.KeyUserToken) {
		return false, nil
	}

	token, err := sess.Value(ctx, session.KeyUserToken, "")
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}

	if _, err := s.userRepo.FindByToken(token); err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, appErrors.InternalError(err)
	}
	return true, nil
}

// LoggedUserID возвращает id из сессии или 0 если не залогинен.
func (s *AuthServiceImpl) LoggedUserID(ctx context.Context, sess *session.Session) (uint, error) {
	loggedIn, err := s.IsUserLoggedIn(ctx, sess)
	if err != nil || !loggedIn {
		return 0, err
	}

	raw, err := sess.Value(ctx, session.KeyUserIdentifier, "0")
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		// Идентификатор в сессии обязан быть числом
		return 0, appErrors.ErrSessionCorrupted
	}
	return uint(id), nil
}

// LoggedUserToken возвращает токен из сессии или "" если не залогинен.
func (s *AuthServiceImpl) LoggedUserToken(ctx context.Context, sess *session.Session) (string, error) {
	loggedIn, err := s.IsUserLoggedIn(ctx, sess)
	if err != nil || !loggedIn {
		return "", err
	}
	return sess.Value(ctx, session.KeyUserToken, "")
}

// LoggedUsername - имя текущего пользователя. Токен к этому моменту уже
// проверен, поэтому его внезапный нерезолв - внутренняя ошибка, а не
// обычный "не найден".
func (s *AuthServiceImpl) LoggedUsername(ctx context.Context, sess *session.Session) (string, error) {
	user, err := s.LoggedUser(ctx, sess)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.Username, nil
}

// LoggedUser возвращает полную запись пользователя или nil если не залогинен.
func (s *AuthServiceImpl) LoggedUser(ctx context.Context, sess *session.Session) (*models.User, error) {
	token, err := s.LoggedUserToken(ctx, sess)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	user, err := s.userRepo.FindByToken(token)
	if err != nil {
		// Токен только что резолвился - такого быть не должно
		return nil, appErrors.InternalError(err)
	}
	return user, nil
}

// Logout: запись в аудит, снятие remember-куки, уничтожение сессии.
// No-op если пользователь не залогинен.
func (s *AuthServiceImpl) Logout(ctx context.Context, rc RequestContext, sess *session.Session, cookies session.Cookies) error {
	loggedIn, err := s.IsUserLoggedIn(ctx, sess)
	if err != nil {
		return err
	}
	if !loggedIn {
		return nil
	}

	userID, err := s.LoggedUserID(ctx, sess)
	if err != nil {
		return err
	}
	username, err := s.LoggedUsername(ctx, sess)
	if err != nil {
		return err
	}

	s.audit(ctx, rc, userID, "auth",
		fmt.Sprintf("User logged out! Username: %s", username),
		models.LogLevelCritical)

	cookies.Unset(s.cfg.Security.RememberCookieName)
	return sess.Destroy(ctx)
}

// ResetUserPassword генерирует новый случайный пароль, хеширует его и
// ротирует токен пользователя (все существующие сессии перестают
// резолвиться). Открытый пароль возвращается один раз вызывающему
// администратору - больше он нигде не хранится.
func (s *AuthServiceImpl) ResetUserPassword(ctx context.Context, rc RequestContext, username string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return "", appErrors.ErrUserNotFound
		}
		return "", appErrors.InternalError(err)
	}

	newPassword, err := security.RandomPassword()
	if err != nil {
		return "", appErrors.InternalError(err)
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return "", appErrors.InternalError(err)
	}

	token, err := s.GenerateUserToken(s.cfg.Security.TokenLength)
	if err != nil {
		return "", err
	}

	user.Password = hash
	user.UserToken = token
	if err := s.userRepo.Update(user); err != nil {
		return "", appErrors.InternalError(err)
	}

	s.audit(ctx, rc, user.ID, "auth",
		fmt.Sprintf("Password reset for user %s", username),
		models.LogLevelCritical)

	return newPassword, nil
}

// RegenerateAllTokens ротирует токены всех пользователей за один проход.
func (s *AuthServiceImpl) RegenerateAllTokens(ctx context.Context, rc RequestContext) BulkResult {
	users, err := s.userRepo.All()
	if err != nil {
		return BulkResult{Status: "failed", Message: "Failed to load users: " + err.Error()}
	}

	for i := range users {
		token, err := s.GenerateUserToken(s.cfg.Security.TokenLength)
		if err != nil {
			return BulkResult{
				Status:  "failed",
				Message: fmt.Sprintf("Token generation failed after %d of %d users", i, len(users)),
			}
		}
		if err := s.userRepo.UpdateToken(users[i].ID, token); err != nil {
			return BulkResult{
				Status:  "failed",
				Message: fmt.Sprintf("Update failed after %d of %d users: %v", i, len(users), err),
			}
		}
	}

	s.audit(ctx, rc, 0, "auth",
		fmt.Sprintf("Regenerated tokens for %d users", len(users)),
		models.LogLevelWarning)

	return BulkResult{Status: "ok", Message: fmt.Sprintf("Regenerated tokens for %d users", len(users))}
}

// RegenerateUserToken ротирует токен одного пользователя.
// false без ошибки - пользователь не найден (нормальный негативный исход).
func (s *AuthServiceImpl) RegenerateUserToken(ctx context.Context, rc RequestContext, userID uint) (bool, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, appErrors.InternalError(err)
	}

	token, err := s.GenerateUserToken(s.cfg.Security.TokenLength)
	if err != nil {
		return false, err
	}
	if err := s.userRepo.UpdateToken(userID, token); err != nil {
		return false, appErrors.InternalError(err)
	}

	s.audit(ctx, rc, userID, "auth", "User token regenerated", models.LogLevelWarning)
	return true, nil
}

// AuthenticateWithAPIKey - аутентификация по заголовку с токеном.
// При успехе сессия наполняется ровно как при обычном логине, поэтому
// дальнейшие проверки авторизации не различают браузер и API.
func (s *AuthServiceImpl) AuthenticateWithAPIKey(ctx context.Context, rc RequestContext, sess *session.Session, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}

	user, err := s.userRepo.FindByToken(token)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			s.audit(ctx, rc, 0, "api", "Invalid api key used", models.LogLevelCritical)
			return false, nil
		}
		return false, appErrors.InternalError(err)
	}

	if !user.AllowAPIAccess {
		s.audit(ctx, rc, user.ID, "api",
			fmt.Sprintf("User %s is not allowed to use api", user.Username),
			models.LogLevelCritical)
		return false, nil
	}

	if err := s.logs.LogAPIAccess(ctx, rc, user.ID); err != nil {
		return false, err
	}

	if err := sess.Set(ctx, session.KeyUserToken, user.UserToken); err != nil {
		return false, err
	}
	if err := sess.Set(ctx, session.KeyUserIdentifier, strconv.FormatUint(uint64(user.ID), 10)); err != nil {
		return false, err
	}

	return true, nil
}

// AuthenticateWithRememberToken восстанавливает сессию по токену из
// remember-куки. false без ошибки - токен больше не резолвится
// (ротация токена, удаление пользователя).
func (s *AuthServiceImpl) AuthenticateWithRememberToken(ctx context.Context, rc RequestContext, sess *session.Session, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}

	user, err := s.userRepo.FindByToken(token)
	if err != nil {
		if appErrors.Is(err, repositories.ErrUserNotFound) {
			return false, nil
		}
		return false, appErrors.InternalError(err)
	}

	if err := sess.Set(ctx, session.KeyUserToken, user.UserToken); err != nil {
		return false, err
	}
	if err := sess.Set(ctx, session.KeyUserIdentifier, strconv.FormatUint(uint64(user.ID), 10)); err != nil {
		return false, err
	}
	return true, nil
}

// OnlineUsers перебирает всех пользователей и оставляет тех, у кого жив
// флаг присутствия. Полный проход по таблице на каждый вызов - терпимо
// только на малом числе пользователей.
func (s *AuthServiceImpl) OnlineUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.All()
	if err != nil {
		return nil, appErrors.InternalError(err)
	}

	online := make([]models.User, 0)
	for _, user := range users {
		if s.UserStatus(ctx, user.ID) == UserStatusOnline {
			online = append(online, user)
		}
	}
	return online, nil
}

// UserStatus - присутствие как функция TTL-кэша: ключ жив - "online",
// иначе "offline". Рестарт кэша просто делает всех offline, особых
// случаев нет.
func (s *AuthServiceImpl) UserStatus(ctx context.Context, userID uint) string {
	value := s.cache.Get(ctx, onlineKey(userID))
	if value.Found() && value.Get() != "" {
		return UserStatusOnline
	}
	return UserStatusOffline
}

// CacheOnlineUser - heartbeat присутствия: каждый аутентифицированный
// запрос продлевает флаг. Пользователь "online" пока делает запросы
// чаще окна TTL; явного сброса при логауте нет, флаг гаснет сам.
func (s *AuthServiceImpl) CacheOnlineUser(ctx context.Context, userID uint) {
	ttl := time.Duration(s.cfg.App.OnlineTTLSeconds) * time.Second
	if err := s.cache.Set(ctx, onlineKey(userID), onlineValue, ttl); err != nil {
		logger.CtxWithError(ctx, "failed to cache online flag", err, "user_id", userID)
	}
}

func onlineKey(userID uint) string {
	return onlineKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

// audit - запись в аудит как best-effort побочный эффект: сбой записи
// не валит основную операцию, но попадает в структурный лог.
func (s *AuthServiceImpl) audit(ctx context.Context, rc RequestContext, userID uint, name, message string, level int) {
	if err := s.logs.Log(ctx, rc, userID, name, message, level); err != nil {
		logger.CtxWithError(ctx, "failed to write audit log", err, "channel", name)
	}
}
