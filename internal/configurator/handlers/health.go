package handlers

import (
	"cabinet-configurator/internal/configurator/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe сообщает готовность и текущее число сессий.
// Пока лимит сессий исчерпан, новые клиенты обслужены не будут, поэтому 503.
func ReadinessProbe(sessions *service.SessionManager) fiber.Handler {
	return func(c fiber.Ctx) error {
		if sessions.Full() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "saturated",
				"sessions": sessions.Count(),
			})
		}
		return c.JSON(fiber.Map{
			"status":   "ready",
			"sessions": sessions.Count(),
		})
	}
}

// StartupProbe проверяет, что приложение успешно запустилось
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}
