package middleware

import (
	"net/http"
	"time"

	"adminkit_backend/internal/config"
	"adminkit_backend/internal/services"
	"adminkit_backend/internal/session"
	"adminkit_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ginCookies - адаптер session.Cookies поверх Gin.
// Set/Unset пишут заголовки сразу, поэтому вызывать их можно только
// до записи тела ответа.
type ginCookies struct {
	c *gin.Context
}

func (g *ginCookies) Get(name string) (string, bool) {
	value, err := g.c.Cookie(name)
	if err != nil {
		return "", false
	}
	return value, true
}

func (g *ginCookies) Set(name, value string, expires time.Time) {
	http.SetCookie(g.c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (g *ginCookies) Unset(name string) {
	http.SetCookie(g.c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// SessionMiddleware привязывает сессию к запросу: id берется из куки,
// при отсутствии выдается новый (кука ставится до выполнения хендлера,
// пустая сессия ключей в хранилище не создает). Здесь же собирается
// RequestContext - сервисы не трогают HTTP-объекты напрямую.
func SessionMiddleware(manager *session.Manager, logs services.LogService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookies := &ginCookies{c: c}

		sessionID, ok := cookies.Get(cfg.Security.SessionCookieName)
		if !ok || sessionID == "" {
			sessionID = uuid.NewString()
			cookies.Set(cfg.Security.SessionCookieName, sessionID,
				time.Now().Add(time.Duration(cfg.Security.SessionTTLMinutes)*time.Minute))
		}

		sess := manager.Open(sessionID)

		rc := services.RequestContext{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			AntiLog:   logs.IsAntiLogActive(cookies),
		}

		c.Set(string(contextkeys.SessionContextKey), sess)
		c.Set(string(contextkeys.CookiesContextKey), session.Cookies(cookies))
		c.Set(string(contextkeys.RequestContextKey), rc)

		c.Next()
	}
}

// GetSession извлекает сессию текущего запроса.
func GetSession(c *gin.Context) *session.Session {
	val, ok := c.Get(string(contextkeys.SessionContextKey))
	if !ok {
		panic("critical error: SessionMiddleware did not set the session key")
	}
	return val.(*session.Session)
}

// GetCookies извлекает адаптер кук текущего запроса.
func GetCookies(c *gin.Context) session.Cookies {
	val, ok := c.Get(string(contextkeys.CookiesContextKey))
	if !ok {
		panic("critical error: SessionMiddleware did not set the cookies key")
	}
	return val.(session.Cookies)
}

// GetRequestContext извлекает RequestContext текущего запроса.
func GetRequestContext(c *gin.Context) services.RequestContext {
	val, ok := c.Get(string(contextkeys.RequestContextKey))
	if !ok {
		panic("critical error: SessionMiddleware did not set the request context key")
	}
	return val.(services.RequestContext)
}
