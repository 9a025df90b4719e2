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
)

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
	SponsorCode string `json:"sponsor_code" validate:"omitempty,max=16"`
}

const referralCodeAttempts = 5

func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}

	req.Username = strings.TrimSpace(req.Username)
	req.SponsorCode = strings.ToUpper(strings.TrimSpace(req.SponsorCode))
	if err := helpers.Validate(&req); err != nil {
		return helpers.JSONFail(c, err)
	}

	var sponsorID *uint
	if req.SponsorCode != "" {
		var sponsor models.User
		if err := database.DB.Where("referral_code = ?", req.SponsorCode).First(&sponsor).Error; err != nil {
			return helpers.JSONError(c, "INVALID_SPONSOR_CODE")
		}
		sponsorID = &sponsor.ID
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return helpers.JSONFail(c, services.ErrUsernameTaken)
	}

	referralCode, err := uniqueReferralCode()
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		ReferralCode: referralCode,
		SponsorID:    sponsorID,
		Role:         models.RolePlayer,
	}
	if err := services.CreatePlayer(database.DB, &user); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return helpers.JSONFail(c, err)
		}
		return helpers.JSONStatus(c, fiber.StatusInternalServerError, "FAILED_TO_REGISTER_USER", err.Error())
	}

	_, token, err := services.OpenSession(database.DB, config.Cfg.JWTSecret, config.Cfg.JWTExpiry, &user, c.Get(fiber.HeaderUserAgent), c.IP())
	if err != nil {
		return helpers.JSONFail(c, err)
	}

	logging.Logger.Info("🆕 user registered", zap.String("username", user.Username), zap.Any("sponsor_id", sponsorID))

	return helpers.JSONCreated(c, "User registered successfully", fiber.Map{
		"token": token,
		"user":  user.Profile(),
	})
}

func uniqueReferralCode() (string, error) {
	for i := 0; i < referralCodeAttempts; i++ {
		code := helpers.GenerateReferralCode()
		var count int64
		if err := database.DB.Model(&models.User{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", helpers.NewError(fiber.StatusInternalServerError, "REFERRAL_CODE_EXHAUSTED")
}
