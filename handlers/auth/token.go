package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/moringa/darasa-api/utils/middleware"
	"github.com/moringa/darasa-api/utils/response"
)

// Logout handles POST /logout by revoking the presented token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Forbidden(c, "Not authenticated")
	}

	if err := h.blacklistService.RevokeToken(c.UserContext(), claims, "logout"); err != nil {
		return response.InternalServerError(c, err)
	}

	return response.OK(c, "Logged out successfully")
}
