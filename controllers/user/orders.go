package user

import (
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/models"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ListOrders(c *fiber.Ctx) error {
	page, limit, offset := helpers.Paginate(c)

	query := database.DB.Model(&models.Order{}).Where("is_active = ?", true).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	var orders []models.Order
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Orders retrieved successfully", fiber.Map{
		"orders":     orders,
		"pagination": helpers.PageMeta(page, limit, total),
	})
}

func GetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_ORDER_ID")
	}

	var order models.Order
	if err := database.DB.Where("id = ? AND is_active = ?", id, true).First(&order).Error; err != nil {
		return helpers.JSONFail(c, services.ErrOrderNotFound)
	}

	return helpers.JSONSuccess(c, "Order retrieved successfully", order)
}
