package services

import (
	"errors"
	"fmt"
	"time"

	"ordergrab/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetPaymentSettings(db *gorm.DB) (*models.PaymentSettings, error) {
	settings := models.PaymentSettings{}
	settings.ID = models.PaymentSettingsID
	if err := db.FirstOrCreate(&settings, models.PaymentSettingsID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func RequestRecharge(db *gorm.DB, userID uint, amount decimal.Decimal, note string) (*models.Transaction, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	settings, err := GetPaymentSettings(db)
	if err != nil {
		return nil, err
	}
	if amount.LessThan(settings.MinRecharge) {
		return nil, ErrBelowMinimum.WithDetail("minimum recharge is " + settings.MinRecharge.StringFixed(2))
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}

	if note == "" {
		note = "Recharge request"
	}

	trx := models.Transaction{
		UserID: user.ID,
		Type:   models.TrxRecharge,
		Amount: amount,
		Status: models.StatusPending,
		Note:   note,
		RefID:  uuid.New().String(),
	}
	if err := db.Create(&trx).Error; err != nil {
		return nil, err
	}
	return &trx, nil
}

func pendingWithdrawTotal(tx *gorm.DB, userID uint) (decimal.Decimal, error) {
	return SumAmount(tx.Model(&models.Transaction{}).
		Where("user_id = ? AND type = ? AND status = ?", userID, models.TrxWithdraw, models.StatusPending))
}

func RequestWithdraw(db *gorm.DB, userID uint, amount decimal.Decimal, note string) (*models.Transaction, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	settings, err := GetPaymentSettings(db)
	if err != nil {
		return nil, err
	}
	if amount.LessThan(settings.MinWithdraw) {
		return nil, ErrBelowMinimum.WithDetail("minimum withdraw is " + settings.MinWithdraw.StringFixed(2))
	}

	var trx models.Transaction
	err = db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if user.IsBlocked {
			return ErrUserBlocked
		}
		if user.IsFrozen() {
			return ErrBalanceFrozen
		}

		var bank models.Bank
		if err := tx.Where("user_id = ?", user.ID).First(&bank).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBankDetailsRequired
			}
			return err
		}

		pending, err := pendingWithdrawTotal(tx, user.ID)
		if err != nil {
			return err
		}
		if user.Balance.LessThan(pending.Add(amount)) {
			return ErrInsufficientBalance.WithDetail(fmt.Sprintf("available %s", user.Balance.Sub(pending).StringFixed(2)))
		}

		if note == "" {
			note = fmt.Sprintf("Withdraw to %s %s", bank.BankName, maskAccount(bank.AccountNumber))
		}

		trx = models.Transaction{
			UserID: user.ID,
			Type:   models.TrxWithdraw,
			Amount: amount,
			Status: models.StatusPending,
			Note:   note,
			RefID:  uuid.New().String(),
		}
		return tx.Create(&trx).Error
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

// ReviewTransaction moves a pending recharge or withdraw to approved or rejected.
func ReviewTransaction(db *gorm.DB, adminID, trxID uint, status, note string, now time.Time) (*models.Transaction, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, ErrInvalidStatus
	}

	var trx models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&trx, trxID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return err
		}
		if trx.Status != models.StatusPending {
			return ErrTransactionNotPending
		}

		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, trx.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		trx.BalanceBefore = user.Balance
		if status == models.StatusApproved {
			switch trx.Type {
			case models.TrxRecharge:
				user.Balance = user.Balance.Add(trx.Amount)
			case models.TrxWithdraw:
				if user.Balance.LessThan(trx.Amount) {
					return ErrInsufficientBalance
				}
				user.Balance = user.Balance.Sub(trx.Amount)
			default:
				return ErrInvalidStatus.WithDetail("transaction type " + trx.Type + " cannot be reviewed")
			}
			if err := tx.Model(&user).Update("balance", user.Balance).Error; err != nil {
				return err
			}
		}
		trx.BalanceAfter = user.Balance

		reviewedAt := now
		trx.Status = status
		trx.ReviewedBy = &adminID
		trx.ReviewedAt = &reviewedAt
		if note != "" {
			trx.Note = note
		}
		return tx.Save(&trx).Error
	})
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

func maskAccount(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "****" + number[len(number)-4:]
}
