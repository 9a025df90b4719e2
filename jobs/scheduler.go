package jobs

import (
	"time"

	"ordergrab/config"
	"ordergrab/database"
	"ordergrab/logging"
	tasks "ordergrab/task"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const (
	sessionCleanupInterval = time.Hour
	limiterIdleAfter       = 30 * time.Minute
)

// LimiterCleaner drops idle rate limiter entries.
type LimiterCleaner interface {
	Cleanup(idle time.Duration) int
}

// StartScheduler registers the background jobs and starts them.
// The caller owns the returned scheduler and should Shutdown it on exit.
func StartScheduler(cfg *config.Config, limiter LimiterCleaner) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(cfg.CycleResetInterval),
		gocron.NewTask(func() {
			n, err := tasks.ResetGrabCycles(database.DB, cfg.GrabCycleResetAfter, time.Now())
			logRun("reset-grab-cycles", n, err)
		}),
		gocron.WithName("reset-grab-cycles"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(sessionCleanupInterval),
		gocron.NewTask(func() {
			n, err := tasks.CleanupExpiredSessions(database.DB, time.Now())
			logRun("cleanup-expired-sessions", n, err)
		}),
		gocron.WithName("cleanup-expired-sessions"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	if limiter != nil {
		_, err = sched.NewJob(
			gocron.DurationJob(limiterIdleAfter),
			gocron.NewTask(func() {
				if n := limiter.Cleanup(limiterIdleAfter); n > 0 {
					logging.Logger.Debug("🧹 rate limiter entries dropped", zap.Int("count", n))
				}
			}),
			gocron.WithName("cleanup-rate-limiter"),
		)
		if err != nil {
			return nil, err
		}
	}

	sched.Start()
	logging.Logger.Info("⏰ scheduler started",
		zap.Duration("cycle_reset_interval", cfg.CycleResetInterval),
		zap.Duration("cycle_reset_after", cfg.GrabCycleResetAfter),
	)
	return sched, nil
}

func logRun(job string, affected int64, err error) {
	if err != nil {
		logging.Logger.Warn("⏰ job failed", zap.String("job", job), zap.Error(err))
		return
	}
	logging.Logger.Debug("⏰ job finished", zap.String("job", job), zap.Int64("affected", affected))
}
