package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/logging"
)

// Delayed выполняет одноразовые отложенные задачи. Ошибки задач только логируются.
// Отмена ctx отменяет ещё не запущенные задачи.
type Delayed struct {
	ctx    context.Context
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewDelayed(ctx context.Context, logger *slog.Logger) *Delayed {
	return &Delayed{ctx: ctx, logger: logging.ResolveLogger(logger).With("module", "scheduler")}
}

func (d *Delayed) After(name string, delay time.Duration, fn func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-d.ctx.Done():
			d.logger.Warn("delayed task cancelled", "event", "task_cancelled", "task", name)
			return
		case <-timer.C:
		}
		if err := fn(d.ctx); err != nil {
			d.logger.Error("delayed task failed", "event", "task_failed", "task", name, "error", err)
			return
		}
		d.logger.Debug("delayed task done", "task", name)
	}()
}

// Wait ждёт завершения всех запланированных задач
func (d *Delayed) Wait() {
	d.wg.Wait()
}
