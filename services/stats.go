package services

import (
	"ordergrab/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SumAmount totals the amount column of q, which must already carry its Model and filters.
func SumAmount(q *gorm.DB) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := q.Select("COALESCE(SUM(amount), 0) AS total").Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total.Round(2), nil
}

type DashboardStats struct {
	Users               int64           `json:"users"`
	BlockedUsers        int64           `json:"blocked_users"`
	FrozenUsers         int64           `json:"frozen_users"`
	Orders              int64           `json:"orders"`
	ActiveOrders        int64           `json:"active_orders"`
	PendingRecharges    int64           `json:"pending_recharges"`
	PendingWithdrawals  int64           `json:"pending_withdrawals"`
	TotalCommissionPaid decimal.Decimal `json:"total_commission_paid"`
	Host                HostStats       `json:"host"`
}

func CollectDashboard(db *gorm.DB) (*DashboardStats, error) {
	var stats DashboardStats

	counts := []struct {
		dest  *int64
		model any
		where string
		args  []any
	}{
		{&stats.Users, &models.User{}, "role = ?", []any{models.RolePlayer}},
		{&stats.BlockedUsers, &models.User{}, "role = ? AND is_blocked = ?", []any{models.RolePlayer, true}},
		{&stats.FrozenUsers, &models.User{}, "frozen_balance > 0", nil},
		{&stats.Orders, &models.Order{}, "1 = 1", nil},
		{&stats.ActiveOrders, &models.Order{}, "is_active = ?", []any{true}},
		{&stats.PendingRecharges, &models.Transaction{}, "type = ? AND status = ?", []any{models.TrxRecharge, models.StatusPending}},
		{&stats.PendingWithdrawals, &models.Transaction{}, "type = ? AND status = ?", []any{models.TrxWithdraw, models.StatusPending}},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where(c.where, c.args...).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	total, err := SumAmount(db.Model(&models.Commission{}))
	if err != nil {
		return nil, err
	}
	stats.TotalCommissionPaid = total
	stats.Host = CollectHostStats()

	return &stats, nil
}
