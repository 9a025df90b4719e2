package user

import (
	"errors"
	"strings"

	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type BankRequest struct {
	BankName      string `json:"bank_name" validate:"required,max=128"`
	AccountName   string `json:"account_name" validate:"required,max=128"`
	AccountNumber string `json:"account_number" validate:"required,max=64"`
	Branch        string `json:"branch" validate:"max=128"`
	SwiftCode     string `json:"swift_code" validate:"max=32"`
}

func GetBank(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}

	var bank models.Bank
	if err := database.DB.Where("user_id = ?", user.ID).First(&bank).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONStatus(c, fiber.StatusNotFound, "BANK_NOT_FOUND", "no bank details on file")
		}
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Bank details retrieved successfully", bank)
}

func UpsertBank(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}

	var req BankRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	req.AccountNumber = strings.ReplaceAll(strings.TrimSpace(req.AccountNumber), " ", "")
	req.SwiftCode = strings.ToUpper(strings.TrimSpace(req.SwiftCode))
	if err := helpers.Validate(&req); err != nil {
		return helpers.JSONFail(c, err)
	}

	var bank models.Bank
	err := database.DB.Where("user_id = ?", user.ID).First(&bank).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return helpers.JSONFail(c, err)
	}

	bank.UserID = user.ID
	bank.BankName = req.BankName
	bank.AccountName = req.AccountName
	bank.AccountNumber = req.AccountNumber
	bank.Branch = req.Branch
	bank.SwiftCode = req.SwiftCode

	if err := database.DB.Save(&bank).Error; err != nil {
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "FAILED_TO_SAVE_BANK", err.Error())
	}

	return helpers.JSONSuccess(c, "Bank details saved successfully", bank)
}
