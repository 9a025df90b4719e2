package middlewares

import (
	"ordergrab/helpers"
	"ordergrab/models"

	"github.com/gofiber/fiber/v2"
)

// AdminOnly must run after RequireAuth.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(models.User)
		if !ok {
			return helpers.JSONStatus(c, fiber.StatusUnauthorized, "AUTHORIZATION_REQUIRED", "no authenticated user")
		}

		if !user.IsAdmin() {
			return helpers.JSONStatus(c, fiber.StatusForbidden, "ADMIN_ACCESS_REQUIRED", "admin access required")
		}

		return c.Next()
	}
}
