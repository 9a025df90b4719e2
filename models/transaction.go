package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TrxRecharge   = "recharge"
	TrxWithdraw   = "withdraw"
	TrxAdjustment = "adjustment"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Transaction struct {
	gorm.Model

	UserID        uint            `gorm:"index;not null" json:"user_id"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Type          string          `gorm:"size:16;index" json:"type"`
	Amount        decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Status        string          `gorm:"size:16;index" json:"status"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(20,2)" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(20,2)" json:"balance_after"`
	Note          string          `gorm:"size:255" json:"note"`
	RefID         string          `gorm:"size:64;uniqueIndex" json:"ref_id"`
	ReviewedBy    *uint           `json:"reviewed_by"`
	ReviewedAt    *time.Time      `json:"reviewed_at"`
}
