package session

import "time"

// Cookies - граница с браузерным хранилищем кук. Реализация для Gin
// живет в middleware; сервисы видят только этот интерфейс, что позволяет
// тестировать их без HTTP-стека.
type Cookies interface {
	Get(name string) (string, bool)
	Set(name, value string, expires time.Time)
	Unset(name string)
}
