package services

import (
	"errors"
	"fmt"
	"time"

	"ordergrab/config"
	"ordergrab/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var hundred = decimal.NewFromInt(100)

type GrabRules struct {
	Cooldown        time.Duration
	FreezeThreshold int
	SponsorPercent  decimal.Decimal
}

func RulesFromConfig(cfg *config.Config) GrabRules {
	return GrabRules{
		Cooldown:        cfg.GrabCooldown,
		FreezeThreshold: cfg.GrabFreezeThreshold,
		SponsorPercent:  cfg.SponsorCommissionPercent,
	}
}

type GrabResult struct {
	Commission decimal.Decimal
	Froze      bool
}

// ApplyGrab mutates user for one grab of order. The user is left untouched on error.
func ApplyGrab(user *models.User, order *models.Order, rules GrabRules, now time.Time) (GrabResult, error) {
	if user.IsBlocked {
		return GrabResult{}, ErrUserBlocked
	}
	if user.IsFrozen() {
		return GrabResult{}, ErrBalanceFrozen
	}
	if !order.Price.IsPositive() {
		return GrabResult{}, ErrInvalidOrder.WithDetail("order has no price")
	}
	if user.LastOrderGrabbedAt != nil && rules.Cooldown > 0 {
		readyAt := user.LastOrderGrabbedAt.Add(rules.Cooldown)
		if now.Before(readyAt) {
			remaining := readyAt.Sub(now).Round(time.Second)
			return GrabResult{}, ErrCooldownActive.WithDetail(fmt.Sprintf("retry in %.0f seconds", remaining.Seconds()))
		}
	}
	if user.Balance.LessThan(order.Price) {
		return GrabResult{}, ErrInsufficientBalance.WithDetail(fmt.Sprintf("order price %s exceeds balance %s", order.Price.StringFixed(2), user.Balance.StringFixed(2)))
	}

	commission := order.CommissionFor()

	user.Balance = user.Balance.Add(commission)
	user.GrabbedOrders = append(user.GrabbedOrders, order.ID)
	grabbedAt := now
	user.LastOrderGrabbedAt = &grabbedAt

	froze := false
	if len(user.GrabbedOrders) > rules.FreezeThreshold {
		user.FrozenBalance = user.FrozenBalance.Add(user.Balance)
		user.Balance = decimal.Zero
		froze = true
	}

	return GrabResult{Commission: commission, Froze: froze}, nil
}

type GrabOutcome struct {
	User              models.User
	Order             models.Order
	Commission        models.Commission
	SponsorCommission *models.Commission
	Froze             bool
}

// GrabOrder runs ApplyGrab against the stored user in one transaction and writes the ledger rows.
func GrabOrder(db *gorm.DB, userID, orderID uint, rules GrabRules, now time.Time) (*GrabOutcome, error) {
	var out GrabOutcome

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND is_active = ?", orderID, true).First(&out.Order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&out.User, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		res, err := ApplyGrab(&out.User, &out.Order, rules, now)
		if err != nil {
			return err
		}
		out.Froze = res.Froze

		if err := tx.Save(&out.User).Error; err != nil {
			return err
		}

		out.Commission = models.Commission{
			UserID:       out.User.ID,
			OrderID:      out.Order.ID,
			SourceUserID: out.User.ID,
			Kind:         models.CommissionKindGrab,
			Amount:       res.Commission,
			Percent:      out.Order.CommissionPercent,
			OrderPrice:   out.Order.Price,
			OrderTitle:   out.Order.Title,
		}
		if err := tx.Create(&out.Commission).Error; err != nil {
			return err
		}

		bonus, err := creditSponsor(tx, &out.User, &out.Order, res.Commission, rules.SponsorPercent)
		if err != nil {
			return err
		}
		out.SponsorCommission = bonus
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

func creditSponsor(tx *gorm.DB, user *models.User, order *models.Order, commission, percent decimal.Decimal) (*models.Commission, error) {
	if user.SponsorID == nil || !percent.IsPositive() {
		return nil, nil
	}

	bonus := commission.Mul(percent).Div(hundred).Round(2)
	if !bonus.IsPositive() {
		return nil, nil
	}

	var sponsor models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sponsor, *user.SponsorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if sponsor.IsBlocked {
		return nil, nil
	}

	sponsor.Balance = sponsor.Balance.Add(bonus)
	if err := tx.Model(&sponsor).Update("balance", sponsor.Balance).Error; err != nil {
		return nil, err
	}

	row := models.Commission{
		UserID:       sponsor.ID,
		OrderID:      order.ID,
		SourceUserID: user.ID,
		Kind:         models.CommissionKindReferral,
		Amount:       bonus,
		Percent:      percent,
		OrderPrice:   order.Price,
		OrderTitle:   order.Title,
	}
	if err := tx.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
