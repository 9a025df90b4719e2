package services

import (
	"ordergrab/helpers"

	"github.com/gofiber/fiber/v2"
)

var (
	ErrUserNotFound          = helpers.NewError(fiber.StatusNotFound, "USER_NOT_FOUND")
	ErrOrderNotFound         = helpers.NewError(fiber.StatusNotFound, "ORDER_NOT_FOUND")
	ErrTransactionNotFound   = helpers.NewError(fiber.StatusNotFound, "TRANSACTION_NOT_FOUND")
	ErrUsernameTaken         = helpers.NewError(fiber.StatusBadRequest, "USERNAME_TAKEN")
	ErrUserBlocked           = helpers.NewError(fiber.StatusForbidden, "USER_BLOCKED")
	ErrBalanceFrozen         = helpers.NewError(fiber.StatusBadRequest, "BALANCE_FROZEN")
	ErrCooldownActive        = helpers.NewError(fiber.StatusTooManyRequests, "GRAB_COOLDOWN_ACTIVE")
	ErrInsufficientBalance   = helpers.NewError(fiber.StatusBadRequest, "INSUFFICIENT_BALANCE")
	ErrInvalidAmount         = helpers.NewError(fiber.StatusBadRequest, "INVALID_AMOUNT")
	ErrBelowMinimum          = helpers.NewError(fiber.StatusBadRequest, "AMOUNT_BELOW_MINIMUM")
	ErrBankDetailsRequired   = helpers.NewError(fiber.StatusBadRequest, "BANK_DETAILS_REQUIRED")
	ErrTransactionNotPending = helpers.NewError(fiber.StatusBadRequest, "TRANSACTION_NOT_PENDING")
	ErrInvalidStatus         = helpers.NewError(fiber.StatusBadRequest, "INVALID_STATUS")
	ErrNothingToRelease      = helpers.NewError(fiber.StatusBadRequest, "NOTHING_TO_RELEASE")
	ErrNegativeBalance       = helpers.NewError(fiber.StatusBadRequest, "BALANCE_WOULD_BE_NEGATIVE")
	ErrCannotBlockSelf       = helpers.NewError(fiber.StatusBadRequest, "CANNOT_BLOCK_SELF")
	ErrInvalidToken          = helpers.NewError(fiber.StatusUnauthorized, "INVALID_TOKEN")
	ErrSessionExpired        = helpers.NewError(fiber.StatusUnauthorized, "SESSION_EXPIRED")
)
