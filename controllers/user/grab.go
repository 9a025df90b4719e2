package user

import (
	"context"
	"fmt"
	"time"

	"ordergrab/config"
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/logging"
	"ordergrab/models"
	"ordergrab/monitoring"
	"ordergrab/providers"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func GrabOrder(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}
	session, _ := c.Locals("session").(models.Session)

	orderID, err := c.ParamsInt("id")
	if err != nil || orderID <= 0 {
		return helpers.JSONError(c, "INVALID_ORDER_ID")
	}

	out, err := services.GrabOrder(database.DB, user.ID, uint(orderID), services.RulesFromConfig(config.Cfg), time.Now())
	if err != nil {
		logging.Logger.Info("⛔ grab rejected", zap.Uint("user_id", user.ID), zap.Int("order_id", orderID), zap.Error(err))
		return helpers.JSONFail(c, err)
	}

	monitoring.OrdersGrabbedTotal.Inc()
	logging.Logger.Info("🛒 order grabbed",
		zap.Uint("user_id", out.User.ID),
		zap.Uint("order_id", out.Order.ID),
		zap.String("commission", out.Commission.Amount.StringFixed(2)),
		zap.Int("cycle_size", len(out.User.GrabbedOrders)),
	)

	if out.Froze {
		monitoring.BalancesFrozenTotal.Inc()
		logging.Logger.Warn("🧊 balance frozen", zap.Uint("user_id", out.User.ID), zap.String("frozen", out.User.FrozenBalance.StringFixed(2)))
		go providers.Broadcast(context.Background(), fmt.Sprintf("🧊 %s balance frozen after %d grabs: %s", out.User.Username, len(out.User.GrabbedOrders), out.User.FrozenBalance.StringFixed(2)))
	}

	token, err := services.IssueToken(config.Cfg.JWTSecret, &out.User, &session)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	grabbed := []uint(out.User.GrabbedOrders)
	return helpers.JSONSuccess(c, "Order grabbed successfully", fiber.Map{
		"order_id":       out.Order.ID,
		"commission":     out.Commission.Amount,
		"balance":        out.User.Balance,
		"frozen_balance": out.User.FrozenBalance,
		"grabbed_orders": grabbed,
		"frozen":         out.Froze,
		"token":          token,
	})
}
