package tasks

import (
	"time"

	"ordergrab/logging"
	"ordergrab/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ResetGrabCycles clears the grabbed order list of users who are not frozen
// and have not grabbed anything for idleAfter.
func ResetGrabCycles(db *gorm.DB, idleAfter time.Duration, now time.Time) (int64, error) {
	cutoff := now.Add(-idleAfter)

	var candidates []models.User
	err := db.Select("id", "grabbed_orders").
		Where("frozen_balance = 0 AND last_order_grabbed_at IS NOT NULL AND last_order_grabbed_at < ?", cutoff).
		Find(&candidates).Error
	if err != nil {
		logging.Logger.Error("❌ Failed to load grab cycles", zap.Error(err))
		return 0, err
	}

	ids := make([]uint, 0, len(candidates))
	for _, u := range candidates {
		if len(u.GrabbedOrders) > 0 {
			ids = append(ids, u.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	// conditions are repeated so a grab that lands in between is not wiped
	result := db.Model(&models.User{}).
		Where("id IN ? AND frozen_balance = 0 AND last_order_grabbed_at < ?", ids, cutoff).
		Update("grabbed_orders", datatypes.JSONSlice[uint]{})
	if result.Error != nil {
		logging.Logger.Error("❌ Failed to reset grab cycles", zap.Error(result.Error))
		return 0, result.Error
	}

	logging.Logger.Info("🔄 Reset grab cycles", zap.Int64("users", result.RowsAffected))
	return result.RowsAffected, nil
}
