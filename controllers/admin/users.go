package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

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

func currentAdmin(c *fiber.Ctx) (models.User, bool) {
	admin, ok := c.Locals("user").(models.User)
	return admin, ok
}

func userIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, helpers.NewError(fiber.StatusBadRequest, "INVALID_USER_ID")
	}
	return uint(id), nil
}

func ListUsers(c *fiber.Ctx) error {
	page, limit, offset := helpers.Paginate(c)

	query := database.DB.Model(&models.User{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where("username LIKE ? OR referral_code LIKE ?", like, like)
	}
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	if c.QueryBool("frozen") {
		query = query.Where("frozen_balance > 0")
	}
	if c.QueryBool("blocked") {
		query = query.Where("is_blocked = ?", true)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	var users []models.User
	if err := query.Order("id DESC").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	profiles := make([]map[string]any, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}

	return helpers.JSONSuccess(c, "Users retrieved successfully", fiber.Map{
		"users":      profiles,
		"pagination": helpers.PageMeta(page, limit, total),
	})
}

func GetUser(c *fiber.Ctx) error {
	id, err := userIDParam(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	var user models.User
	if err := database.DB.Preload("Sponsor").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONFail(c, services.ErrUserNotFound)
		}
		return helpers.JSONFail(c, err)
	}

	var referrals int64
	if err := database.DB.Model(&models.User{}).Where("sponsor_id = ?", user.ID).Count(&referrals).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	earned, err := services.SumAmount(database.DB.Model(&models.Commission{}).Where("user_id = ?", user.ID))
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	profile := user.Profile()
	if user.Sponsor != nil {
		profile["sponsor"] = fiber.Map{"id": user.Sponsor.ID, "username": user.Sponsor.Username}
	}
	profile["referrals"] = referrals
	profile["total_commission"] = earned

	var bank models.Bank
	if err := database.DB.Where("user_id = ?", user.ID).First(&bank).Error; err == nil {
		profile["bank"] = bank
	}
	var address models.Address
	if err := database.DB.Where("user_id = ?", user.ID).First(&address).Error; err == nil {
		profile["address"] = address
	}

	return helpers.JSONSuccess(c, "User retrieved successfully", profile)
}

type BlockUserRequest struct {
	IsBlocked bool `json:"is_blocked"`
}

func SetBlocked(c *fiber.Ctx) error {
	admin, ok := currentAdmin(c)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}
	id, err := userIDParam(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	var req BlockUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	user, err := services.SetBlocked(database.DB, admin.ID, id, req.IsBlocked)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	logging.Logger.Info("🚫 user block status changed", zap.Uint("user_id", user.ID), zap.Bool("blocked", user.IsBlocked), zap.Uint("admin_id", admin.ID))
	return helpers.JSONSuccess(c, "User updated successfully", user.Profile())
}

func ReleaseFrozen(c *fiber.Ctx) error {
	admin, ok := currentAdmin(c)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}
	id, err := userIDParam(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	user, trx, err := services.ReleaseFrozen(database.DB, admin.ID, id, time.Now())
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	logging.Logger.Info("🔓 frozen balance released", zap.Uint("user_id", user.ID), zap.String("amount", trx.Amount.StringFixed(2)), zap.Uint("admin_id", admin.ID))
	go providers.Broadcast(context.Background(), fmt.Sprintf("🔓 %s released %s for %s", admin.Username, trx.Amount.StringFixed(2), user.Username))

	return helpers.JSONSuccess(c, "Frozen balance released", fiber.Map{
		"user":        user.Profile(),
		"transaction": trx,
	})
}

type AdjustBalanceRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note" validate:"max=255"`
}

func AdjustBalance(c *fiber.Ctx) error {
	admin, ok := currentAdmin(c)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}
	id, err := userIDParam(c)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	var req AdjustBalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if err := helpers.Validate(&req); err != nil {
		return helpers.JSONFail(c, err)
	}

	user, trx, err := services.AdjustBalance(database.DB, admin.ID, id, req.Amount, req.Note, time.Now())
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	logging.Logger.Info("⚖️ balance adjusted", zap.Uint("user_id", user.ID), zap.String("amount", trx.Amount.StringFixed(2)), zap.Uint("admin_id", admin.ID))
	return helpers.JSONSuccess(c, "Balance adjusted successfully", fiber.Map{
		"user":        user.Profile(),
		"transaction": trx,
	})
}
