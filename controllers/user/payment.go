package user

import (
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
)

const defaultQRSize = 256

func GetPaymentSettings(c *fiber.Ctx) error {
	settings, err := services.GetPaymentSettings(database.DB)
	if err != nil {
		return helpers.JSONFail(c, err)
	}
	return helpers.JSONSuccess(c, "Payment settings retrieved successfully", settings)
}

func PaymentQRCode(c *fiber.Ctx) error {
	settings, err := services.GetPaymentSettings(database.DB)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	size := c.QueryInt("size", defaultQRSize)
	if size < 64 || size > 1024 {
		size = defaultQRSize
	}

	png, err := services.RechargeQRCode(settings, size)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("png")
	return c.Send(png)
}
