package models

import (
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model

	Title             string          `gorm:"size:128;not null" json:"title"`
	Slug              string          `gorm:"size:160;index" json:"slug"`
	Description       string          `gorm:"type:text" json:"description"`
	ImageURL          string          `gorm:"size:512" json:"image_url"`
	Price             decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"price"`
	CommissionPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"commission_percent"`
	IsActive          bool            `gorm:"not null;index" json:"is_active"`
}

func (o *Order) BeforeSave(tx *gorm.DB) error {
	o.Slug = slug.Make(o.Title)
	return nil
}

// CommissionFor returns Price * CommissionPercent / 100 rounded to cents.
func (o *Order) CommissionFor() decimal.Decimal {
	return o.Price.Mul(o.CommissionPercent).Div(decimal.NewFromInt(100)).Round(2)
}
