package user

import (
	"errors"

	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AddressRequest struct {
	FullName   string `json:"full_name" validate:"required,max=128"`
	Phone      string `json:"phone" validate:"required,max=32"`
	Line1      string `json:"line1" validate:"required,max=255"`
	Line2      string `json:"line2" validate:"max=255"`
	City       string `json:"city" validate:"required,max=64"`
	State      string `json:"state" validate:"max=64"`
	PostalCode string `json:"postal_code" validate:"max=16"`
	Country    string `json:"country" validate:"required,max=64"`
}

func GetAddress(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}

	var address models.Address
	if err := database.DB.Where("user_id = ?", user.ID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONStatus(c, fiber.StatusNotFound, "ADDRESS_NOT_FOUND", "no address on file")
		}
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Address retrieved successfully", address)
}

func UpsertAddress(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}

	var req AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := helpers.Validate(&req); err != nil {
		return helpers.JSONFail(c, err)
	}

	var address models.Address
	err := database.DB.Where("user_id = ?", user.ID).First(&address).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.JSONFail(c, err)
	}

	address.UserID = user.ID
	address.FullName = req.FullName
	address.Phone = req.Phone
	address.Line1 = req.Line1
	address.Line2 = req.Line2
	address.City = req.City
	address.State = req.State
	address.PostalCode = req.PostalCode
	address.Country = req.Country

	if err := database.DB.Save(&address).Error; err != nil {
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "FAILED_TO_SAVE_ADDRESS", err.Error())
	}

	return helpers.JSONSuccess(c, "Address saved successfully", address)
}
