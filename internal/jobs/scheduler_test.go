package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMaintenance struct {
	streakResets int
	expirySweeps int
}

func (f *fakeMaintenance) ResetStaleStreaks(context.Context) (int64, error) {
	f.streakResets++
	return 1, nil
}

func (f *fakeMaintenance) MarkExpiredChallenges(context.Context) (int64, error) {
	f.expirySweeps++
	return 0, nil
}

func TestSchedulerRegistersJobs(t *testing.T) {
	s := NewScheduler(&fakeMaintenance{})
	s.Start(context.Background())
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 2)
}
