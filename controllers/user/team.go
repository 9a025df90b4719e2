package user

import (
	"time"

	"ordergrab/database"
	"ordergrab/helpers"
	"ordergrab/models"

	"github.com/gofiber/fiber/v2"
)

type teamMember struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	JoinedAt     time.Time `json:"joined_at"`
	GrabbedCount int       `json:"grabbed_count"`
}

// Team lists the caller's direct referrals. Balances are not exposed.
func Team(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return helpers.JSONStatus(c, fiber.StatusUnauthorized, "INVALID_SESSION", "user not found")
	}
	page, limit, offset := helpers.Paginate(c)

	var total int64
	if err := database.DB.Model(&models.User{}).Where("sponsor_id = ?", user.ID).Count(&total).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	var referrals []models.User
	if err := database.DB.Where("sponsor_id = ?", user.ID).Order("id DESC").Offset(offset).Limit(limit).Find(&referrals).Error; err != nil {
		return helpers.JSONFail(c, err)
	}

	members := make([]teamMember, 0, len(referrals))
	for _, r := range referrals {
		members = append(members, teamMember{
			ID:           r.ID,
			Username:     r.Username,
			JoinedAt:     r.CreatedAt,
			GrabbedCount: len(r.GrabbedOrders),
		})
	}

	return helpers.JSONSuccess(c, "Team retrieved successfully", fiber.Map{
		"referral_code": user.ReferralCode,
		"members":       members,
		"count":         total,
		"pagination":    helpers.PageMeta(page, limit, total),
	})
}
