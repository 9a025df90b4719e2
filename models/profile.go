package models

import "gorm.io/gorm"

type Address struct {
	gorm.Model

	UserID     uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName   string `gorm:"size:128" json:"full_name"`
	Phone      string `gorm:"size:32" json:"phone"`
	Line1      string `gorm:"size:255" json:"line1"`
	Line2      string `gorm:"size:255" json:"line2"`
	City       string `gorm:"size:64" json:"city"`
	State      string `gorm:"size:64" json:"state"`
	PostalCode string `gorm:"size:16" json:"postal_code"`
	Country    string `gorm:"size:64" json:"country"`
}

type Bank struct {
	gorm.Model

	UserID        uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	BankName      string `gorm:"size:128" json:"bank_name"`
	AccountName   string `gorm:"size:128" json:"account_name"`
	AccountNumber string `gorm:"size:64" json:"account_number"`
	Branch        string `gorm:"size:128" json:"branch"`
	SwiftCode     string `gorm:"size:32" json:"swift_code"`
}
