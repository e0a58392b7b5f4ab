package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/logging"
)

// Job - периодическая работа, получает момент срабатывания
type Job func(ctx context.Context, now time.Time) error

// Every запускает job на каждой границе interval (например, в начале каждой минуты)
// до отмены ctx.
func Every(ctx context.Context, name string, interval time.Duration, logger *slog.Logger, job Job) {
	logger = logging.ResolveLogger(logger).With("module", "scheduler", "job", name)
	now := time.Now()
	first := now.Truncate(interval).Add(interval)

	timer := time.NewTimer(first.Sub(now))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case tick := <-timer.C:
		run(ctx, logger, job, tick)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("job stopped")
			return
		case tick := <-ticker.C:
			run(ctx, logger, job, tick)
		}
	}
}

// Daily запускает job раз в сутки в hour:minute по часовому поясу loc.
func Daily(ctx context.Context, name string, hour, minute int, loc *time.Location, logger *slog.Logger, job Job) {
	logger = logging.ResolveLogger(logger).With("module", "scheduler", "job", name)
	for {
		next := NextDaily(time.Now().In(loc), hour, minute)
		logger.Debug("next run scheduled", "at", next)
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			logger.Info("job stopped")
			return
		case tick := <-timer.C:
			run(ctx, logger, job, tick.In(loc))
		}
	}
}

// NextDaily - ближайший момент hour:minute строго после now
func NextDaily(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func run(ctx context.Context, logger *slog.Logger, job Job, now time.Time) {
	if err := job(ctx, now); err != nil {
		logger.Error("job failed", "event", "job_failed", "error", err)
	}
}
