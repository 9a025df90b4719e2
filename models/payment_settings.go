package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentSettingsID is the primary key of the single settings row.
const PaymentSettingsID = 1

type PaymentSettings struct {
	gorm.Model

	RechargeAddress string          `gorm:"size:255" json:"recharge_address"`
	Network         string          `gorm:"size:32" json:"network"`
	BankName        string          `gorm:"size:128" json:"bank_name"`
	AccountName     string          `gorm:"size:128" json:"account_name"`
	AccountNumber   string          `gorm:"size:64" json:"account_number"`
	MinRecharge     decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"min_recharge"`
	MinWithdraw     decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"min_withdraw"`
	Instructions    string          `gorm:"type:text" json:"instructions"`
}
