package middleware

import (
	"adminkit_backend/internal/appErrors"
	"adminkit_backend/internal/logger"
	"adminkit_backend/internal/models"
	"adminkit_backend/internal/services"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "X-Api-Key"

// AutoLogin восстанавливает сессию по remember-me куке и продлевает
// флаг присутствия. Не режет запрос: анонимы проходят дальше, их
// остановит AuthenticatedCheck на защищенных маршрутах.
func AutoLogin(auth services.AuthService, rememberCookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sess := GetSession(c)
		cookies := GetCookies(c)

		loggedIn, err := auth.IsUserLoggedIn(ctx, sess)
		if err != nil {
			appErrors.HandleError(c, err)
			return
		}

		if !loggedIn {
			if token, ok := cookies.Get(rememberCookieName); ok && token != "" {
				restored, err := auth.AuthenticateWithRememberToken(ctx, GetRequestContext(c), sess, token)
				if err != nil {
					appErrors.HandleError(c, err)
					return
				}
				if !restored {
					// Протухший или отозванный токен - кука больше не нужна
					cookies.Unset(rememberCookieName)
				}
				loggedIn = restored
			}
		}

		// Heartbeat присутствия: каждый аутентифицированный запрос
		// продлевает окно "online"
		if loggedIn {
			userID, err := auth.LoggedUserID(ctx, sess)
			if err != nil {
				appErrors.HandleError(c, err)
				return
			}
			if userID != 0 {
				auth.CacheOnlineUser(ctx, userID)
				// Дальнейшие записи лога этого запроса несут user_id
				c.Request = c.Request.WithContext(logger.WithUserID(ctx, userID))
			}
		}

		c.Next()
	}
}

// AuthenticatedCheck пропускает запрос с живой сессией или валидным
// API-ключом в заголовке. API-ключ наполняет ту же сессию, что и логин,
// поэтому дальше различий между браузером и API нет.
func AuthenticatedCheck(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sess := GetSession(c)

		loggedIn, err := auth.IsUserLoggedIn(ctx, sess)
		if err != nil {
			appErrors.HandleError(c, err)
			return
		}

		if !loggedIn {
			if apiKey := c.GetHeader(apiKeyHeader); apiKey != "" {
				ok, err := auth.AuthenticateWithAPIKey(ctx, GetRequestContext(c), sess, apiKey)
				if err != nil {
					appErrors.HandleError(c, err)
					return
				}
				loggedIn = ok
			}
		}

		if !loggedIn {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			return
		}

		c.Next()
	}
}

// BannedCheck отклоняет запросы забаненных: сессия уничтожается,
// remember-кука снимается, наружу уходит 403 с причиной бана.
func BannedCheck(auth services.AuthService, bans services.BanService, rememberCookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sess := GetSession(c)

		userID, err := auth.LoggedUserID(ctx, sess)
		if err != nil {
			appErrors.HandleError(c, err)
			return
		}
		if userID == 0 {
			c.Next()
			return
		}

		banned, err := bans.IsBanned(userID)
		if err != nil {
			appErrors.HandleError(c, err)
			return
		}
		if !banned {
			c.Next()
			return
		}

		reason, _, err := bans.BanReason(userID)
		if err != nil {
			appErrors.HandleError(c, err)
			return
		}

		GetCookies(c).Unset(rememberCookieName)
		if err := sess.Destroy(ctx); err != nil {
			appErrors.HandleError(c, err)
			return
		}

		appErrors.HandleError(c, appErrors.ErrUserBanned.WithDetails(gin.H{"reason": reason}))
	}
}

// RequireRoles ограничивает маршрут перечисленными ролями.
func RequireRoles(auth services.AuthService, roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		user, err := auth.LoggedUser(c.Request.Context(), GetSession(c))
		if err != nil {
			appErrors.HandleError(c, err)
			return
		}
		if user == nil {
			appErrors.HandleError(c, appErrors.ErrUnauthorized)
			return
		}

		if !roleSet[user.Role] {
			appErrors.HandleError(c, appErrors.ErrForbidden)
			return
		}

		c.Next()
	}
}
