package services

import (
	"errors"
	"time"

	"ordergrab/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func lockUser(tx *gorm.DB, userID uint) (*models.User, error) {
	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ReleaseFrozen returns the frozen balance to the spendable balance and starts a new grab cycle.
func ReleaseFrozen(db *gorm.DB, adminID, userID uint, now time.Time) (*models.User, *models.Transaction, error) {
	var user *models.User
	var trx models.Transaction

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = lockUser(tx, userID); err != nil {
			return err
		}
		if !user.IsFrozen() {
			return ErrNothingToRelease
		}

		released := user.FrozenBalance
		before := user.Balance
		user.Balance = user.Balance.Add(released)
		user.FrozenBalance = decimal.Zero
		user.GrabbedOrders = datatypes.JSONSlice[uint]{}

		if err := tx.Save(user).Error; err != nil {
			return err
		}

		reviewedAt := now
		trx = models.Transaction{
			UserID:        user.ID,
			Type:          models.TrxAdjustment,
			Amount:        released,
			Status:        models.StatusApproved,
			BalanceBefore: before,
			BalanceAfter:  user.Balance,
			Note:          "Frozen balance released",
			RefID:         uuid.New().String(),
			ReviewedBy:    &adminID,
			ReviewedAt:    &reviewedAt,
		}
		return tx.Create(&trx).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return user, &trx, nil
}

// AdjustBalance applies a signed manual correction and records it as an approved adjustment.
func AdjustBalance(db *gorm.DB, adminID, userID uint, amount decimal.Decimal, note string, now time.Time) (*models.User, *models.Transaction, error) {
	amount = amount.Round(2)
	if amount.IsZero() {
		return nil, nil, ErrInvalidAmount
	}

	var user *models.User
	var trx models.Transaction

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		if user, err = lockUser(tx, userID); err != nil {
			return err
		}

		after := user.Balance.Add(amount)
		if after.IsNegative() {
			return ErrNegativeBalance
		}

		if note == "" {
			note = "Manual adjustment"
		}

		reviewedAt := now
		trx = models.Transaction{
			UserID:        user.ID,
			Type:          models.TrxAdjustment,
			Amount:        amount,
			Status:        models.StatusApproved,
			BalanceBefore: user.Balance,
			BalanceAfter:  after,
			Note:          note,
			RefID:         uuid.New().String(),
			ReviewedBy:    &adminID,
			ReviewedAt:    &reviewedAt,
		}

		user.Balance = after
		if err := tx.Model(user).Update("balance", user.Balance).Error; err != nil {
			return err
		}
		return tx.Create(&trx).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return user, &trx, nil
}

func SetBlocked(db *gorm.DB, adminID, userID uint, blocked bool) (*models.User, error) {
	if adminID == userID && blocked {
		return nil, ErrCannotBlockSelf
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.IsBlocked = blocked
	if err := db.Model(&user).Update("is_blocked", blocked).Error; err != nil {
		return nil, err
	}

	if blocked {
		if err := db.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// CreatePlayer inserts user, reporting a unique username clash as ErrUsernameTaken.
func CreatePlayer(db *gorm.DB, user *models.User) error {
	err := db.Create(user).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		var count int64
		if cerr := db.Model(&models.User{}).Where("username = ?", user.Username).Count(&count).Error; cerr == nil && count > 0 {
			return ErrUsernameTaken
		}
	}
	return err
}
