package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/database"
	"github.com/moringa/darasa-api/utils/response"
)

// MakeHTTPHandleFunc binds a store-aware handler to a route. A returned
// error is rendered with its kind's status.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			return response.FromError(c, err)
		}
		return nil
	}
}
