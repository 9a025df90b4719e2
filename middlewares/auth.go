package middlewares

import (
	"strings"
	"time"

	"ordergrab/config"
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth resolves the bearer token to a live session and stores
// the user and session in c.Locals("user") and c.Locals("session").
func RequireAuth(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "AUTHORIZATION_REQUIRED", "authorization header required")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_AUTHORIZATION_HEADER", "expected Bearer token")
	}

	session, user, err := services.ResolveSession(database.DB, config.Cfg.JWTSecret, strings.TrimSpace(parts[1]), time.Now())
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	if user.IsBlocked {
		return helpers.JSONFail(c, services.ErrUserBlocked)
	}

	c.Locals("user", *user)
	c.Locals("session", *session)
	return c.Next()
}
