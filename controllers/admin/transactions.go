package admin

import (
	"time"

	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/logging"
	"ordergrab/models"
	"ordergrab/monitoring"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ListTransactions(c *fiber.Ctx) error {
	page, limit, offset := helpers.Paginate(c)

	query := database.DB.Model(&models.Transaction{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if t := c.Query("type"); t != "" {
		query = query.Where("type = ?", t)
	}
	if userID := c.QueryInt("user_id"); userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	var rows []models.Transaction
	err := query.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "username", "balance", "frozen_balance")
	}).Order("id DESC").Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Transactions retrieved successfully", fiber.Map{
		"transactions": rows,
		"pagination":   helpers.PageMeta(page, limit, total),
	})
}

type UpdateTransactionRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Note   string `json:"note" validate:"max=255"`
}

func UpdateTransactionStatus(c *fiber.Ctx) error {
	admin, ok := currentAdmin(c)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return helpers.JSONError(c, "INVALID_TRANSACTION_ID")
	}

	var req UpdateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := helpers.Validate(&req); err != nil {
		return helpers.JSONFail(c, err)
	}

	trx, err := services.ReviewTransaction(database.DB, admin.ID, uint(id), req.Status, req.Note, time.Now())
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	monitoring.TransactionsReviewedTotal.WithLabelValues(trx.Type, trx.Status).Inc()
	logging.Logger.Info("🧾 transaction reviewed",
		zap.Uint("transaction_id", trx.ID),
		zap.String("type", trx.Type),
		zap.String("status", trx.Status),
		zap.Uint("admin_id", admin.ID),
	)

	return helpers.JSONSuccess(c, "Transaction updated successfully", trx)
}
