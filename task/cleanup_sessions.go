package tasks

import (
	"time"

	"ordergrab/logging"
	"ordergrab/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CleanupExpiredSessions hard deletes every session that expired before now.
func CleanupExpiredSessions(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Unscoped().
		Where("expires_at < ?", now).
		Delete(&models.Session{})

	if result.Error != nil {
		logging.Logger.Error("❌ Failed to delete expired sessions", zap.Error(result.Error))
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		logging.Logger.Info("✅ Deleted expired sessions", zap.Int64("count", result.RowsAffected))
	}
	return result.RowsAffected, nil
}
