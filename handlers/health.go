package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/utils/apperrors"
)

func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := store.HealthCheck(ctx); err != nil {
		return apperrors.Unavailable("database unavailable").Wrap(err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
