package admin

import (
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
)

func Dashboard(c *fiber.Ctx) error {
	stats, err := services.CollectDashboard(database.DB)
	if err != nil {
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "FAILED_TO_FETCH_DASHBOARD", err.Error())
	}
	return helpers.JSONSuccess(c, "Dashboard retrieved successfully", stats)
}
