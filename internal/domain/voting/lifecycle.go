package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/logging"
)

const DefaultPinDelay = 5 * time.Second

// Lifecycle открывает голосования по расписанию и закрывает их в день игры.
type Lifecycle struct {
	Schedules ScheduleReader
	Locations LocationReader
	Votings   VotingRepository
	Roster    RosterRepository
	Users     UserDirectory
	Messenger Messenger
	Tasks     TaskScheduler

	ChatID   int64
	Location *time.Location
	PinDelay time.Duration
	Logger   *slog.Logger
}

// GameTime - дата игры для голосования, открытого в now
func GameTime(now time.Time, sch schedule.GameSchedule) time.Time {
	d := now.AddDate(0, 0, sch.VotingInAdvanceDays)
	return time.Date(d.Year(), d.Month(), d.Day(), sch.Time.Hour, sch.Time.Minute, 0, 0, now.Location())
}

func (l Lifecycle) logger() *slog.Logger {
	return logging.ResolveLogger(l.Logger).With("module", "voting_lifecycle")
}

func (l Lifecycle) inZone(now time.Time) time.Time {
	if l.Location == nil {
		return now
	}
	return now.In(l.Location)
}

// StartVotings открывает голосования по всем расписаниям, для которых наступила минута открытия.
func (l Lifecycle) StartVotings(ctx context.Context, now time.Time) ([]Voting, error) {
	now = l.inZone(now)
	schedules, err := l.Schedules.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active schedules: %w", err)
	}
	active, err := l.Votings.ListByState(ctx, StateActive)
	if err != nil {
		return nil, fmt.Errorf("list active votings: %w", err)
	}
	activeBySchedule := make(map[schedule.ScheduleID]bool, len(active))
	for _, v := range active {
		activeBySchedule[v.GameScheduleID] = true
	}

	var (
		opened []Voting
		errs   []error
	)
	for _, sch := range schedule.FindSchedulesToStartVoting(now, schedules, activeBySchedule) {
		v, err := l.Open(ctx, sch, now)
		if err != nil {
			errs = append(errs, fmt.Errorf("schedule %s: %w", sch.ID, err))
			continue
		}
		opened = append(opened, *v)
	}
	return opened, errors.Join(errs...)
}

// Open отправляет опрос, планирует закрепление и сохраняет ACTIVE голосование.
func (l Lifecycle) Open(ctx context.Context, sch schedule.GameSchedule, now time.Time) (*Voting, error) {
	logger := l.logger().With("schedule_id", string(sch.ID))
	now = l.inZone(now)
	gameTime := GameTime(now, sch)

	sent, err := l.Messenger.SendPoll(l.ChatID, pollQuestion(gameTime, l.findLocation(ctx, sch.LocationID)), PollOptions)
	if err != nil {
		logger.Error("failed to send poll", "event", "send_poll_failed", "error", err)
		return nil, fmt.Errorf("send poll: %w", err)
	}
	l.schedulePin(sent)

	v := &Voting{
		ID:             VotingID(uuid.NewString()),
		GameScheduleID: sch.ID,
		PollID:         sent.PollID,
		ChatID:         l.ChatID,
		MessageID:      sent.MessageID,
		GameTime:       gameTime,
		State:          StateActive,
		CreatedAt:      now,
	}
	if err := l.Votings.Create(ctx, v); err != nil {
		logger.Error("failed to save voting, poll is orphaned",
			"event", "save_voting_failed", "poll_id", sent.PollID, "message_id", sent.MessageID, "error", err)
		return nil, fmt.Errorf("save voting: %w", err)
	}
	logger.Info("voting opened", "event", "voting_opened", "voting_id", string(v.ID), "poll_id", v.PollID, "game_time", gameTime)
	return v, nil
}

func (l Lifecycle) findLocation(ctx context.Context, id location.LocationID) *location.Location {
	if l.Locations == nil || id == "" {
		return nil
	}
	loc, err := l.Locations.Get(ctx, id)
	if err != nil {
		l.logger().Warn("location lookup failed", "location_id", string(id), "error", err)
		return nil
	}
	return loc
}

func (l Lifecycle) schedulePin(sent SentPoll) {
	if l.Tasks == nil {
		return
	}
	delay := l.PinDelay
	if delay <= 0 {
		delay = DefaultPinDelay
	}
	chatID, messageID := l.ChatID, sent.MessageID
	l.Tasks.After("pin_poll", delay, func(context.Context) error {
		return l.Messenger.PinMessage(chatID, messageID)
	})
}

// NotifyAndClose рассылает составы по голосованиям с игрой сегодня и закрывает их.
// Возвращает число закрытых голосований.
func (l Lifecycle) NotifyAndClose(ctx context.Context, now time.Time) (int, error) {
	now = l.inZone(now)
	votings, err := l.Votings.ListByState(ctx, StateActive)
	if err != nil {
		return 0, fmt.Errorf("list active votings: %w", err)
	}

	var (
		g      errgroup.Group
		closed atomic.Int64
	)
	for _, v := range votings {
		if !sameDay(l.inZone(v.GameTime), now) {
			continue
		}
		v := v
		g.Go(func() error {
			if err := l.notifyAndClose(ctx, v); err != nil {
				l.logger().Error("failed to notify and close voting",
					"event", "close_voting_failed", "voting_id", string(v.ID), "error", err)
				return nil
			}
			closed.Add(1)
			return nil
		})
	}
	_ = g.Wait()
	return int(closed.Load()), nil
}

func (l Lifecycle) notifyAndClose(ctx context.Context, v Voting) error {
	sch, err := l.Schedules.Get(ctx, v.GameScheduleID)
	if err != nil {
		return fmt.Errorf("get schedule: %w", err)
	}
	players, err := l.Roster.ListPlayers(ctx, v.ID)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	starters := Roster(players).Starters(sch.PlayersCount)
	users, err := resolveUsers(ctx, l.Users, starters.PlayerIDs())
	if err != nil {
		return fmt.Errorf("resolve users: %w", err)
	}
	if err := l.Messenger.SendMessage(v.ChatID, rosterMessage(l.inZone(v.GameTime), users)); err != nil {
		return fmt.Errorf("send roster: %w", err)
	}
	if err := l.Votings.UpdateState(ctx, v.ID, StateClosed); err != nil {
		return fmt.Errorf("close voting: %w", err)
	}
	l.logger().Info("voting closed", "event", "voting_closed", "voting_id", string(v.ID), "players", len(users))
	return nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
