package user

import (
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/models"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListCommissions(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}
	page, limit, offset := helpers.Paginate(c)

	query := database.DB.Model(&models.Commission{}).Where("user_id = ?", user.ID)
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	earned, err := services.SumAmount(database.DB.Model(&models.Commission{}).Where("user_id = ?", user.ID))
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	var rows []models.Commission
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Commissions retrieved successfully", fiber.Map{
		"commissions":  rows,
		"total_earned": earned,
		"pagination":   helpers.PageMeta(page, limit, total),
	})
}
