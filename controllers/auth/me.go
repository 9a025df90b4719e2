package auth

import (
	"ordergrab/config"
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/models"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
)

func Me(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}

	profile := user.Profile()
	if user.SponsorID != nil {
		var sponsor models.User
		if err := database.DB.Select("id", "username").First(&sponsor, *user.SponsorID).Error; err == nil {
			profile["sponsor"] = fiber.Map{"id": sponsor.ID, "username": sponsor.Username}
		}
	}

	// Grabbed orders in the old token go stale after a release or cycle reset.
	if session, ok := c.Locals("session").(models.Session); ok {
		token, err := services.IssueToken(config.Cfg.JWTSecret, &user, &session)
		if err != nil {
			return helpers.JSONFail(c, err)
		}
		profile["token"] = token
	}

	return helpers.JSONSuccess(c, "Profile retrieved successfully", profile)
}
