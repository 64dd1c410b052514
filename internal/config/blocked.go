package config

import (
	"encoding/json"
	"os"
)

// LoadBlockedUsernames читает JSON-список зарезервированных имен.
// Возвращает nil если файл отсутствует или не парсится - регистрация
// в этом случае работает без стоп-листа.
func LoadBlockedUsernames(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil
	}

	return names
}
