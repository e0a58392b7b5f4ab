package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/logging"
)

const scheduleMask = "schedule:*"

// ScheduleCache кэширует расписания в JSON: schedule:id:{id} и schedule:state:{state}.
// Любое сохранение сбрасывает все ключи schedule:*.
type ScheduleCache struct {
	client *Client
	next   schedule.ScheduleRepository
	ttl    time.Duration
	logger *slog.Logger
}

func NewScheduleCache(client *Client, next schedule.ScheduleRepository, ttl time.Duration, logger *slog.Logger) schedule.ScheduleRepository {
	return &ScheduleCache{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logging.ResolveLogger(logger).With("module", "redis_cache"),
	}
}

func (r *ScheduleCache) GetByID(ctx context.Context, id schedule.ScheduleID) (*schedule.GameSchedule, error) {
	key := fmt.Sprintf("schedule:id:%s", id)
	var cached schedule.GameSchedule
	if r.load(ctx, key, &cached) {
		return &cached, nil
	}
	sch, err := r.next.GetByID(ctx, id)
	if err != nil || sch == nil {
		return sch, err
	}
	r.put(ctx, key, sch)
	return sch, nil
}

func (r *ScheduleCache) ListByState(ctx context.Context, state schedule.State) ([]schedule.GameSchedule, error) {
	key := fmt.Sprintf("schedule:state:%s", state)
	var cached []schedule.GameSchedule
	if r.load(ctx, key, &cached) {
		return cached, nil
	}
	list, err := r.next.ListByState(ctx, state)
	if err != nil {
		return nil, err
	}
	r.put(ctx, key, list)
	return list, nil
}

func (r *ScheduleCache) List(ctx context.Context) ([]schedule.GameSchedule, error) {
	return r.next.List(ctx)
}

func (r *ScheduleCache) Save(ctx context.Context, s *schedule.GameSchedule) error {
	if err := r.next.Save(ctx, s); err != nil {
		return err
	}
	if n, err := r.client.deleteByMask(ctx, scheduleMask); err != nil {
		r.logger.Warn("cache invalidation failed", "mask", scheduleMask, "error", err)
	} else {
		r.logger.Debug("cache invalidated", "mask", scheduleMask, "keys", n)
	}
	return nil
}

func (r *ScheduleCache) load(ctx context.Context, key string, dst any) bool {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		r.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Warn("cache entry is corrupted", "key", key, "error", err)
		return false
	}
	return true
}

func (r *ScheduleCache) put(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		r.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
