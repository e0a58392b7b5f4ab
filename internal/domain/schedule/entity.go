package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
)

type ScheduleID string

// State - состояние шаблона расписания
type State string

const (
	StateActive   State = "ACTIVE"
	StateInactive State = "INACTIVE"
)

// GameSchedule - еженедельный шаблон игры, из которого создаются голосования
type GameSchedule struct {
	ID                  ScheduleID
	DayOfWeek           time.Weekday // день игры
	Time                TimeOfDay    // время начала игры
	Duration            time.Duration
	LocationID          location.LocationID
	VotingInAdvanceDays int       // за сколько дней до игры открывается голосование
	VotingTime          TimeOfDay // время открытия голосования
	PlayersCount        int       // сколько игроков нужно на игру
	State               State
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// VotingDay возвращает день недели, в который открывается голосование.
func (s GameSchedule) VotingDay() time.Weekday {
	return time.Weekday(((int(s.DayOfWeek)-s.VotingInAdvanceDays)%7 + 7) % 7)
}

// TimeOfDay - время суток без даты
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay разбирает "HH:MM" или "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return TimeOfDay{}, fmt.Errorf("invalid time of day %q", s)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// Short форматирует время как "HH:MM".
func (t TimeOfDay) Short() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// SameMinute сравнивает с моментом времени с точностью до минуты.
func (t TimeOfDay) SameMinute(at time.Time) bool {
	return at.Hour() == t.Hour && at.Minute() == t.Minute
}

var weekdays = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// ParseWeekday разбирает названия вида "MONDAY" (регистр не важен).
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return time.Sunday, fmt.Errorf("invalid day of week %q", s)
	}
	return d, nil
}

// FormatWeekday - обратное к ParseWeekday.
func FormatWeekday(d time.Weekday) string {
	return strings.ToUpper(d.String())
}

// CreateScheduleInput - DTO для создания расписания
type CreateScheduleInput struct {
	DayOfWeek           time.Weekday
	Time                TimeOfDay
	Duration            time.Duration
	LocationID          location.LocationID
	VotingInAdvanceDays int
	VotingTime          TimeOfDay
	PlayersCount        int
}

// UpdateScheduleInput - DTO для обновления расписания
type UpdateScheduleInput struct {
	DayOfWeek           *time.Weekday
	Time                *TimeOfDay
	Duration            *time.Duration
	LocationID          *location.LocationID
	VotingInAdvanceDays *int
	VotingTime          *TimeOfDay
	PlayersCount        *int
	State               *State
}

func (in CreateScheduleInput) Validate() error {
	if in.DayOfWeek < time.Sunday || in.DayOfWeek > time.Saturday {
		return ErrInvalidDayOfWeek
	}
	if in.PlayersCount <= 0 {
		return ErrPlayersCountInvalid
	}
	if in.VotingInAdvanceDays < 0 {
		return ErrVotingInAdvanceInvalid
	}
	return nil
}

var (
	ErrScheduleNotFound       = errors.New("game schedule not found")
	ErrInvalidDayOfWeek       = errors.New("day of week is invalid")
	ErrPlayersCountInvalid    = errors.New("players count must be greater than 0")
	ErrVotingInAdvanceInvalid = errors.New("voting in advance days must not be negative")
	ErrInvalidState           = errors.New("schedule state is invalid")
)
