package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/logging"
)

// LocationCache кэширует локации поверх основного репозитория.
// Формат ключа: location:{id}, поля локации хранятся в Hash.
type LocationCache struct {
	client *Client
	next   location.LocationRepository
	ttl    time.Duration
	logger *slog.Logger
}

func NewLocationCache(client *Client, next location.LocationRepository, ttl time.Duration, logger *slog.Logger) location.LocationRepository {
	return &LocationCache{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logging.ResolveLogger(logger).With("module", "redis_cache"),
	}
}

func locationKey(id location.LocationID) string {
	return fmt.Sprintf("location:%s", id)
}

func (r *LocationCache) GetByID(ctx context.Context, id location.LocationID) (*location.Location, error) {
	key := locationKey(id)
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		r.logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err == nil && len(fields) != 0 {
		return &location.Location{
			ID:            location.LocationID(fields["id"]),
			Name:          fields["name"],
			Address:       fields["address"],
			AddressMapURL: fields["addressMapUrl"],
		}, nil
	}

	loc, err := r.next.GetByID(ctx, id)
	if err != nil || loc == nil {
		return loc, err
	}
	r.store(ctx, loc)
	return loc, nil
}

func (r *LocationCache) store(ctx context.Context, loc *location.Location) {
	key := locationKey(loc.ID)
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key, map[string]interface{}{
			"id":            string(loc.ID),
			"name":          loc.Name,
			"address":       loc.Address,
			"addressMapUrl": loc.AddressMapURL,
		})
		p.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		r.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (r *LocationCache) List(ctx context.Context) ([]location.Location, error) {
	return r.next.List(ctx)
}

func (r *LocationCache) Save(ctx context.Context, loc *location.Location) error {
	if err := r.next.Save(ctx, loc); err != nil {
		return err
	}
	r.invalidate(ctx, locationKey(loc.ID))
	return nil
}

func (r *LocationCache) Delete(ctx context.Context, id location.LocationID) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, locationKey(id))
	return nil
}

func (r *LocationCache) invalidate(ctx context.Context, key string) {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Warn("cache invalidation failed", "key", key, "error", err)
	}
}
