package services

import (
	"fmt"
	"strings"

	"ordergrab/helpers"
	"ordergrab/models"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"
)

var ErrNoRechargeAddress = helpers.NewError(fiber.StatusNotFound, "RECHARGE_ADDRESS_NOT_SET")

func RechargeURI(settings *models.PaymentSettings) string {
	network := strings.ToLower(strings.TrimSpace(settings.Network))
	if network == "" {
		return settings.RechargeAddress
	}
	return fmt.Sprintf("%s:%s", network, settings.RechargeAddress)
}

func RechargeQRCode(settings *models.PaymentSettings, size int) ([]byte, error) {
	if strings.TrimSpace(settings.RechargeAddress) == "" {
		return nil, ErrNoRechargeAddress
	}
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(RechargeURI(settings), qrcode.Medium, size)
}
