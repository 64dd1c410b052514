package services

// RequestContext - явно передаваемое окружение запроса.
// Заполняется middleware один раз на запрос; сервисы никогда не читают
// глобальное состояние процесса.
type RequestContext struct {
	IP        string
	UserAgent string

	// AntiLog - активен ли операторский режим подавления аудита
	// (подписанная кука, проверенная против настроенного секрета).
	AntiLog bool
}

const unknownValue = "Unknown"

// IPOrUnknown возвращает ip запроса или "Unknown".
func (rc RequestContext) IPOrUnknown() string {
	if rc.IP == "" {
		return unknownValue
	}
	return truncate(rc.IP, 255)
}

// UserAgentOrUnknown возвращает user agent запроса или "Unknown".
func (rc RequestContext) UserAgentOrUnknown() string {
	if rc.UserAgent == "" {
		return unknownValue
	}
	return truncate(rc.UserAgent, 255)
}

// truncate обрезает строку до max байт (колонки ограничены 255).
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
