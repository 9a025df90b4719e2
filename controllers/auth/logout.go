package auth

import (
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/models"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
)

func Logout(c *fiber.Ctx) error {
	session, ok := c.Locals("session").(models.Session)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "session not found")
	}

	if err := services.CloseSession(database.DB, session.SID); err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Logged out", nil)
}
