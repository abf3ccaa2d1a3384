// Package jobs runs the background maintenance tasks on a cron schedule.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Maintenance is the storage surface the scheduled jobs need.
type Maintenance interface {
	ResetStaleStreaks(ctx context.Context) (int64, error)
	MarkExpiredChallenges(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron  *cron.Cron
	store Maintenance
}

func NewScheduler(store Maintenance) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		store: store,
	}
}

// Start registers the jobs and starts the cron loop. Streaks reset once a
// day at midnight UTC, expired challenges are swept hourly.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.AddFunc("0 0 * * *", func() {
		n, err := s.store.ResetStaleStreaks(ctx)
		if err != nil {
			log.WithError(err).Error("streak reset failed")
			return
		}
		log.WithField("users", n).Info("reset stale kindness streaks")
	})

	s.cron.AddFunc("0 * * * *", func() {
		n, err := s.store.MarkExpiredChallenges(ctx)
		if err != nil {
			log.WithError(err).Error("challenge expiry sweep failed")
			return
		}
		if n > 0 {
			log.WithField("challenges", n).Info("marked expired challenges")
		}
	})

	s.cron.Start()
	log.Info("background scheduler started")
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("background scheduler stopped")
}
