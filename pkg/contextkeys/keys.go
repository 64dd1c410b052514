package contextkeys

type ContextKey string

const (
	// SessionContextKey - ключ *session.Session текущего запроса
	SessionContextKey ContextKey = "session"

	// CookiesContextKey - ключ адаптера кук текущего запроса
	CookiesContextKey ContextKey = "cookies"

	// RequestContextKey - ключ services.RequestContext (ip, user agent, antilog)
	RequestContextKey ContextKey = "request_context"
)
