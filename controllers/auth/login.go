package auth

import (
	"errors"
	"strings"

	"ordergrab/config"
	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/logging"
	"ordergrab/models"
	"ordergrab/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := helpers.Validate(&req); err != nil {
		return helpers.JSONFail(c, err)
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
		}
		return helpers.JSONFail(c, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logging.Logger.Warn("🔒 failed login", zap.String("username", user.Username), zap.String("ip", c.IP()))
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
	}
	if user.IsBlocked {
		return helpers.JSONFail(c, services.ErrUserBlocked)
	}

	_, token, err := services.OpenSession(database.DB, config.Cfg.JWTSecret, config.Cfg.JWTExpiry, &user, c.Get(fiber.HeaderUserAgent), c.IP())
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	return helpers.JSONSuccess(c, "Login successful", fiber.Map{
		"token": token,
		"user":  user.Profile(),
	})
}
