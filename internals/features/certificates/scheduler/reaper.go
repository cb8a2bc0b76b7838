package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	certService "quizku_backend/internals/features/certificates/service"
	"quizku_backend/internals/logger"
)

// RemoteReaper is the OSS side of the cleanup.
type RemoteReaper interface {
	ReapOlderThan(ctx context.Context, retention time.Duration) (int, error)
}

type Reaper struct {
	Store     *certService.Store
	Remote    RemoteReaper
	Retention time.Duration
	log       *logrus.Entry
}

func NewReaper(store *certService.Store, remote RemoteReaper, retention time.Duration) *Reaper {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &Reaper{
		Store:     store,
		Remote:    remote,
		Retention: retention,
		log:       logger.L().WithField("job", "artifact_reaper"),
	}
}

// RunOnce deletes local, then remote, artifacts older than Retention.
func (r *Reaper) RunOnce(ctx context.Context, now time.Time) {
	n, err := r.Store.Reap(now, r.Retention)
	if err != nil {
		r.log.WithError(err).Error("local reap failed")
	} else if n > 0 {
		r.log.WithField("deleted", n).Info("stale artifacts removed")
	}

	if r.Remote == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	m, err := r.Remote.ReapOlderThan(ctx, r.Retention)
	if err != nil {
		r.log.WithError(err).Warn("remote reap failed")
		return
	}
	if m > 0 {
		r.log.WithField("deleted", m).Info("stale remote artifacts removed")
	}
}

// Register schedules the reaper on c. schedule defaults to @every 1h.
func (r *Reaper) Register(c *cron.Cron, schedule string) (cron.EntryID, error) {
	if schedule == "" {
		schedule = "@every 1h"
	}
	return c.AddFunc(schedule, func() { r.RunOnce(context.Background(), time.Now()) })
}
