package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"wardrobe/internal/quality"
)

// Scheduler periodically walks all users and enqueues quality jobs:
// a refresh when the latest score is older than the user's refresh
// interval, and a daily retention cleanup. Enqueue dedupes on pending
// jobs, so overlapping ticks are harmless.
type Scheduler struct {
	Repo  *Repo
	Store *quality.GormStore
	Log   *zap.Logger

	// Interval between scheduling passes; defaults to an hour.
	Interval time.Duration
}

const cleanupEvery = 24 * time.Hour

func (s *Scheduler) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	userIDs, err := s.Store.AllUserIDs(ctx)
	if err != nil {
		s.Log.Error("scheduler user listing failed", zap.Error(err))
		return
	}

	now := time.Now().UTC()
	for _, uid := range userIDs {
		prefs, err := s.Store.LoadPreferences(ctx, uid)
		if err != nil {
			continue
		}

		latest, err := s.Store.Latest(ctx, uid)
		if err != nil {
			continue
		}

		due := latest == nil ||
			now.Sub(latest.ComputedAt) >= time.Duration(prefs.RefreshIntervalDays)*24*time.Hour
		if due {
			if err := s.Repo.Enqueue(uid, TypeQualityRefresh, now); err != nil {
				s.Log.Error("enqueue refresh failed",
					zap.String("user_id", uid.String()), zap.Error(err))
			}
		}

		if err := s.Repo.Enqueue(uid, TypeQualityCleanup, now.Add(cleanupEvery)); err != nil {
			s.Log.Error("enqueue cleanup failed",
				zap.String("user_id", uid.String()), zap.Error(err))
		}
	}
}
