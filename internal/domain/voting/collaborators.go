package voting

import (
	"context"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
)

// SentPoll - идентификаторы отправленного опроса
type SentPoll struct {
	MessageID int
	PollID    string
}

// Messenger - исходящий канал в чат
type Messenger interface {
	SendPoll(chatID int64, question string, options []string) (SentPoll, error)
	PinMessage(chatID int64, messageID int) error
	SendMessage(chatID int64, text string) error
}

type ScheduleReader interface {
	Get(ctx context.Context, id schedule.ScheduleID) (*schedule.GameSchedule, error)
	ListActive(ctx context.Context) ([]schedule.GameSchedule, error)
}

type LocationReader interface {
	Get(ctx context.Context, id location.LocationID) (*location.Location, error)
}

type UserDirectory interface {
	ListByIDs(ctx context.Context, ids []int64) ([]user.User, error)
	UpsertProfile(ctx context.Context, profile user.User) (*user.User, error)
}

// TaskScheduler запускает fn один раз через delay
type TaskScheduler interface {
	After(name string, delay time.Duration, fn func(ctx context.Context) error)
}
