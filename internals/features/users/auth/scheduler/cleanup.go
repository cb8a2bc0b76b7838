package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"quizku_backend/internals/logger"
)

type BlacklistCleaner interface {
	CleanupBlacklist(ctx context.Context) (int64, error)
}

// CleanupOnce removes blacklist rows whose tokens have expired.
func CleanupOnce(ctx context.Context, svc BlacklistCleaner) {
	log := logger.L().WithField("job", "token_blacklist_cleanup")

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := svc.CleanupBlacklist(ctx)
	if err != nil {
		log.WithError(err).Error("cleanup failed")
		return
	}
	if n > 0 {
		log.WithField("deleted", n).Info("expired tokens removed")
	} else {
		log.Debug("no expired tokens")
	}
}

// RegisterBlacklistCleanup schedules CleanupOnce. schedule defaults to @daily.
func RegisterBlacklistCleanup(c *cron.Cron, schedule string, svc BlacklistCleaner) (cron.EntryID, error) {
	if schedule == "" {
		schedule = "@daily"
	}
	return c.AddFunc(schedule, func() { CleanupOnce(context.Background(), svc) })
}
