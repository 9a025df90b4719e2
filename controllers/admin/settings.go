package admin

import (
	"strings"

	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/logging"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentSettingsRequest struct {
	RechargeAddress *string          `json:"recharge_address" validate:"omitempty,max=255"`
	Network         *string          `json:"network" validate:"omitempty,max=32"`
	BankName        *string          `json:"bank_name" validate:"omitempty,max=128"`
	AccountName     *string          `json:"account_name" validate:"omitempty,max=128"`
	AccountNumber   *string          `json:"account_number" validate:"omitempty,max=64"`
	MinRecharge     *decimal.Decimal `json:"min_recharge"`
	MinWithdraw     *decimal.Decimal `json:"min_withdraw"`
	Instructions    *string          `json:"instructions"`
}

func UpdatePaymentSettings(c *fiber.Ctx) error {
	var req PaymentSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := helpers.Validate(&req); err != nil {
		return helpers.JSONFail(c, err)
	}
	if (req.MinRecharge != nil && req.MinRecharge.IsNegative()) || (req.MinWithdraw != nil && req.MinWithdraw.IsNegative()) {
		return helpers.JSONFail(c, services.ErrInvalidAmount.WithDetail("minimums cannot be negative"))
	}

	settings, err := services.GetPaymentSettings(database.DB)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	if req.RechargeAddress != nil {
		settings.RechargeAddress = strings.TrimSpace(*req.RechargeAddress)
	}
	if req.Network != nil {
		settings.Network = strings.TrimSpace(*req.Network)
	}
	if req.BankName != nil {
		settings.BankName = *req.BankName
	}
	if req.AccountName != nil {
		settings.AccountName = *req.AccountName
	}
	if req.AccountNumber != nil {
		settings.AccountNumber = *req.AccountNumber
	}
	if req.MinRecharge != nil {
		settings.MinRecharge = req.MinRecharge.Round(2)
	}
	if req.MinWithdraw != nil {
		settings.MinWithdraw = req.MinWithdraw.Round(2)
	}
	if req.Instructions != nil {
		settings.Instructions = *req.Instructions
	}

	if err := database.DB.Save(settings).Error; err != nil {
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "FAILED_TO_SAVE_SETTINGS", err.Error())
	}

	logging.Logger.Info("⚙️ payment settings updated", zap.String("network", settings.Network))
	return helpers.JSONSuccess(c, "Payment settings updated successfully", settings)
}
