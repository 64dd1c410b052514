package validator

import (
	"log"

	"adminkit_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные функции валидации.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Нерегистрируемое правило - ошибка конфигурации приложения
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-user-role': роль из канонического списка
	mustRegister("is-user-role", validateUserRole)

	// 'is-log-level': уровень лога 1..4
	mustRegister("is-log-level", validateLogLevel)
}

func validateUserRole(fl validator.FieldLevel) bool {
	role := models.UserRole(fl.Field().String())
	for _, valid := range models.ValidUserRoles {
		if role == valid {
			return true
		}
	}
	return false
}

func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().Int()
	return level >= models.LogLevelCritical && level <= models.LogLevelInfo
}
