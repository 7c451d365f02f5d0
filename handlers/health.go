package handlers

import (
	"github.com/abceng/results-portal/database"
	"github.com/gofiber/fiber/v2"
)

// HandleCheckHealth reports service and database health.
func HandleCheckHealth(store *database.GORMStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
