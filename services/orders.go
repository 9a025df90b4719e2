package services

import (
	"strings"

	"ordergrab/helpers"
	"ordergrab/models"

	"github.com/gofiber/fiber/v2"
)

var ErrInvalidOrder = helpers.NewError(fiber.StatusBadRequest, "INVALID_ORDER")

// ValidateOrder checks the fields an admin may set on an order.
func ValidateOrder(order *models.Order) error {
	order.Title = strings.TrimSpace(order.Title)
	order.Price = order.Price.Round(2)
	order.CommissionPercent = order.CommissionPercent.Round(2)
	switch {
	case order.Title == "":
		return ErrInvalidOrder.WithDetail("title is required")
	case len(order.Title) > 128:
		return ErrInvalidOrder.WithDetail("title is longer than 128 characters")
	case !order.Price.IsPositive():
		return ErrInvalidOrder.WithDetail("price must be greater than 0")
	case !order.CommissionPercent.IsPositive() || order.CommissionPercent.GreaterThan(hundred):
		return ErrInvalidOrder.WithDetail("commission_percent must be within (0, 100]")
	}
	return nil
}
