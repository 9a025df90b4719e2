package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;size:32;not null" json:"username"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	ReferralCode string `gorm:"uniqueIndex;size:16" json:"referral_code"`
	SponsorID    *uint  `gorm:"index" json:"sponsor_id"`
	Sponsor      *User  `gorm:"foreignKey:SponsorID" json:"-"`
	Role         string `gorm:"size:16;default:player;index" json:"role"`

	Balance            decimal.Decimal          `gorm:"type:decimal(20,2);not null;default:0" json:"balance"`
	FrozenBalance      decimal.Decimal          `gorm:"type:decimal(20,2);not null;default:0" json:"frozen_balance"`
	GrabbedOrders      datatypes.JSONSlice[uint] `json:"grabbed_orders"`
	LastOrderGrabbedAt *time.Time               `json:"last_order_grabbed_at"`
	IsBlocked          bool                     `gorm:"default:false" json:"is_blocked"`

	Transactions []Transaction `gorm:"foreignKey:UserID" json:"-"`
	Commissions  []Commission  `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsFrozen() bool {
	return u.FrozenBalance.IsPositive()
}

// Profile is the shape returned to the owner of the account.
func (u *User) Profile() map[string]any {
	grabbed := []uint(u.GrabbedOrders)
	if grabbed == nil {
		grabbed = []uint{}
	}
	return map[string]any{
		"id":                    u.ID,
		"username":              u.Username,
		"referral_code":         u.ReferralCode,
		"sponsor_id":            u.SponsorID,
		"role":                  u.Role,
		"balance":               u.Balance,
		"frozen_balance":        u.FrozenBalance,
		"grabbed_orders":        grabbed,
		"last_order_grabbed_at": u.LastOrderGrabbedAt,
		"is_blocked":            u.IsBlocked,
		"created_at":            u.CreatedAt,
	}
}
