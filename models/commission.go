package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CommissionKindGrab     = "grab"
	CommissionKindReferral = "referral"
)

// Commission is an append-only ledger row.
type Commission struct {
	gorm.Model

	UserID       uint            `gorm:"index;not null" json:"user_id"`
	OrderID      uint            `gorm:"index;not null" json:"order_id"`
	SourceUserID uint            `gorm:"index" json:"source_user_id"`
	Kind         string          `gorm:"size:16;index" json:"kind"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Percent      decimal.Decimal `gorm:"type:decimal(5,2)" json:"percent"`
	OrderPrice   decimal.Decimal `gorm:"type:decimal(20,2)" json:"order_price"`
	OrderTitle   string          `gorm:"size:128" json:"order_title"`
}
