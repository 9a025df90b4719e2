package user

import (
	"context"
	"fmt"

	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/logging"
	"ordergrab/models"
	"ordergrab/providers"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WalletRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note" validate:"max=255"`
}

func parseWalletRequest(c *fiber.Ctx) (*WalletRequest, error) {
	var req WalletRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, helpers.NewError(fiber.StatusBadRequest, "INVALID_JSON")
	}
	if err := helpers.Validate(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func RequestRecharge(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}

	req, err := parseWalletRequest(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	trx, err := services.RequestRecharge(database.DB, user.ID, req.Amount, req.Note)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	logging.Logger.Info("💰 recharge requested", zap.Uint("user_id", user.ID), zap.String("amount", trx.Amount.StringFixed(2)), zap.String("ref_id", trx.RefID))
	go providers.Broadcast(context.Background(), fmt.Sprintf("💰 Recharge request #%d from %s: %s", trx.ID, user.Username, trx.Amount.StringFixed(2)))

	return helpers.JSONCreated(c, "Recharge request submitted", trx)
}

func RequestWithdraw(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}

	req, err := parseWalletRequest(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	trx, err := services.RequestWithdraw(database.DB, user.ID, req.Amount, req.Note)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	logging.Logger.Info("🏧 withdraw requested", zap.Uint("user_id", user.ID), zap.String("amount", trx.Amount.StringFixed(2)), zap.String("ref_id", trx.RefID))
	go providers.Broadcast(context.Background(), fmt.Sprintf("🏧 Withdraw request #%d from %s: %s", trx.ID, user.Username, trx.Amount.StringFixed(2)))

	return helpers.JSONCreated(c, "Withdraw request submitted", trx)
}

func ListMyTransactions(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}
	page, limit, offset := helpers.Paginate(c)

	query := database.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	var rows []models.Transaction
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Transactions retrieved successfully", fiber.Map{
		"transactions": rows,
		"pagination":   helpers.PageMeta(page, limit, total),
	})
}

// Balance reports the spendable balance net of withdrawals still waiting for review.
func Balance(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}

	pending, err := services.SumAmount(database.DB.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND status = ?", user.ID, models.TrxWithdraw, models.StatusPending))
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	available := user.Balance.Sub(pending)
	if available.IsNegative() {
		available = decimal.Zero
	}

	return helpers.JSONSuccess(c, "Balance retrieved successfully", fiber.Map{
		"balance":           user.Balance,
		"frozen_balance":    user.FrozenBalance,
		"pending_withdraws": pending,
		"available":         available,
	})
}
