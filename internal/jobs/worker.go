package jobs

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"wardrobe/internal/quality"
)

type Worker struct {
	ID     string
	Repo   *Repo
	Engine *quality.Engine
	Store  *quality.GormStore
	Log    *zap.Logger
}

func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(800 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job, err := w.Repo.Claim(w.ID)
			if err != nil {
				w.Log.Error("worker claim failed", zap.Error(err))
				continue
			}
			if job == nil {
				continue
			}
			w.handle(ctx, job)
		}
	}
}

func (w *Worker) handle(ctx context.Context, job *Job) {
	switch job.Type {
	case TypeQualityRefresh:
		w.handleRefresh(ctx, job)
	case TypeQualityCleanup:
		w.handleCleanup(ctx, job)
	default:
		_ = w.Repo.MarkFailed(job.ID, "unknown job type")
	}
}

func (w *Worker) handleRefresh(ctx context.Context, job *Job) {
	score, _, err := w.Engine.Compute(ctx, job.UserID)
	if err != nil {
		w.retry(job, "compute failed: "+err.Error())
		return
	}

	w.Log.Info("scheduled quality refresh",
		zap.String("user_id", job.UserID.String()),
		zap.Float64("total_score", score.TotalScore),
	)
	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) handleCleanup(ctx context.Context, job *Job) {
	prefs, err := w.Store.LoadPreferences(ctx, job.UserID)
	if err != nil {
		// user gone, nothing to clean
		if err == quality.ErrNotFound {
			_ = w.Repo.MarkDone(job.ID)
			return
		}
		w.retry(job, "load preferences failed: "+err.Error())
		return
	}

	if _, err := w.Engine.Cleanup(ctx, job.UserID, prefs.HistoryRetentionDays); err != nil {
		w.retry(job, "cleanup failed: "+err.Error())
		return
	}
	_ = w.Repo.MarkDone(job.ID)
}

func (w *Worker) retry(job *Job, errMsg string) {
	attempts := job.Attempts + 1
	if attempts >= job.MaxAttempts {
		_ = w.Repo.MarkFailed(job.ID, errMsg)
		return
	}

	sec := math.Min(math.Pow(2, float64(attempts)), 600)
	next := time.Now().Add(time.Duration(sec) * time.Second)

	_ = w.Repo.RetryLater(job.ID, attempts, next, errMsg)
}
