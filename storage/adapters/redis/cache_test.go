package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/storage/adapters/memory"
)

// Тесты требуют живой Redis: REDIS_TEST_ADDR=localhost:6379
func testClient(t *testing.T) *Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR is not set")
	}
	c, err := NewClient(context.Background(), Options{Addr: addr, DB: 15})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := c.FlushDB(context.Background()).Err(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestScheduleCacheInvalidatesOnSave(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)
	store := memory.NewStore()
	cache := NewScheduleCache(client, store.Schedules(), time.Minute, nil)

	sch := &schedule.GameSchedule{ID: "s1", DayOfWeek: time.Monday, PlayersCount: 12, State: schedule.StateActive}
	if err := cache.Save(ctx, sch); err != nil {
		t.Fatalf("save: %v", err)
	}
	list, err := cache.ListByState(ctx, schedule.StateActive)
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected list %v %v", list, err)
	}

	// запись мимо кэша не видна до инвалидации
	hidden := schedule.GameSchedule{ID: "s2", State: schedule.StateActive}
	_ = store.Schedules().Save(ctx, &hidden)
	list, _ = cache.ListByState(ctx, schedule.StateActive)
	if len(list) != 1 {
		t.Fatalf("expected cached list, got %d", len(list))
	}

	sch.PlayersCount = 14
	if err := cache.Save(ctx, sch); err != nil {
		t.Fatalf("save: %v", err)
	}
	list, _ = cache.ListByState(ctx, schedule.StateActive)
	if len(list) != 2 {
		t.Fatalf("expected fresh list after save, got %d", len(list))
	}
	got, err := cache.GetByID(ctx, "s1")
	if err != nil || got == nil || got.PlayersCount != 14 {
		t.Fatalf("unexpected schedule %+v %v", got, err)
	}
}

func TestLocationCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	client := testClient(t)
	store := memory.NewStore()
	cache := NewLocationCache(client, store.Locations(), time.Minute, nil)

	if err := cache.Save(ctx, &location.Location{ID: "gym", Name: "Зал"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := cache.GetByID(ctx, "gym")
	if err != nil || got == nil || got.Name != "Зал" {
		t.Fatalf("unexpected location %+v %v", got, err)
	}
	if n, _ := client.Exists(ctx, "location:gym").Result(); n != 1 {
		t.Fatalf("expected cached hash")
	}
	if err := cache.Delete(ctx, "gym"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = cache.GetByID(ctx, "gym")
	if err != nil || got != nil {
		t.Fatalf("expected nil after delete, got %+v %v", got, err)
	}
}
