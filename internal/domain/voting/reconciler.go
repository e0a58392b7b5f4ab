package voting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/logging"
)

// Reconciler применяет ответы на опрос к составу и сообщает в чат об изменениях
// после закрытия голосования.
type Reconciler struct {
	Votings         VotingRepository
	Roster          RosterRepository
	Schedules       ScheduleReader
	Users           UserDirectory
	Messenger       Messenger
	MinPlayersCount int
	Logger          *slog.Logger
	Now             func() time.Time
}

func (r Reconciler) logger() *slog.Logger {
	return logging.ResolveLogger(r.Logger).With("module", "poll_answer")
}

func (r Reconciler) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// HandlePollAnswer обрабатывает один ответ. Неизвестный опрос или расписание
// логируются и игнорируются; ошибки хранилища возвращаются.
func (r Reconciler) HandlePollAnswer(ctx context.Context, ans PollAnswer) error {
	logger := r.logger().With("poll_id", ans.PollID, "user_id", ans.User.ID)
	if ans.PollID == "" || ans.User.ID == 0 {
		logger.Warn("malformed poll answer", "event", "poll_answer_malformed")
		return nil
	}

	v, err := r.Votings.GetByPollID(ctx, ans.PollID)
	if err != nil {
		return fmt.Errorf("get voting by poll: %w", err)
	}
	if v == nil {
		logger.Info("poll answer for unknown voting", "event", "voting_not_found")
		return nil
	}
	sch, err := r.Schedules.Get(ctx, v.GameScheduleID)
	if errors.Is(err, schedule.ErrScheduleNotFound) {
		logger.Warn("voting references missing schedule", "event", "schedule_not_found", "schedule_id", string(v.GameScheduleID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("get schedule: %w", err)
	}

	member := r.upsertProfile(ctx, logger, ans.User)

	players, err := r.Roster.ListPlayers(ctx, v.ID)
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	roster := Roster(players)
	starters := roster.Starters(sch.PlayersCount)
	idx := roster.IndexOf(member.ID)

	switch {
	case ans.VotedYes() && idx < 0:
		return r.join(ctx, logger, v, sch, starters, member)
	case !ans.VotedYes() && idx >= 0:
		return r.leave(ctx, logger, v, sch, roster, starters, member, idx < len(starters))
	default:
		logger.Debug("poll answer does not change roster")
		return nil
	}
}

func (r Reconciler) upsertProfile(ctx context.Context, logger *slog.Logger, pu PollUser) user.User {
	profile := user.User{ID: pu.ID, FirstName: pu.FirstName, LastName: pu.LastName, Username: pu.Username}
	if r.Users == nil {
		return profile
	}
	saved, err := r.Users.UpsertProfile(ctx, profile)
	if err != nil {
		logger.Error("failed to upsert user profile", "event", "user_upsert_failed", "error", err)
		return profile
	}
	return *saved
}

func (r Reconciler) join(ctx context.Context, logger *slog.Logger, v *Voting, sch *schedule.GameSchedule, starters Roster, member user.User) error {
	added, err := r.Roster.AddPlayer(ctx, Player{VotingID: v.ID, PlayerID: member.ID, CreatedAt: r.now()})
	if err != nil {
		return fmt.Errorf("add player: %w", err)
	}
	if !added {
		return nil
	}
	logger.Info("player joined", "event", "player_joined", "voting_id", string(v.ID))
	if v.State != StateClosed {
		return nil
	}

	projected := len(starters) + 1
	var text string
	switch {
	case projected < r.MinPlayersCount:
		text = joinedShortMessage(member, projected, r.MinPlayersCount)
	case projected == r.MinPlayersCount:
		text = joinedSafeMessage(member, projected)
	case projected <= sch.PlayersCount:
		text = joinedMessage(member, projected, sch.PlayersCount)
	default:
		return nil
	}
	r.notify(logger, v.ChatID, text)
	return nil
}

func (r Reconciler) leave(ctx context.Context, logger *slog.Logger, v *Voting, sch *schedule.GameSchedule, roster, starters Roster, member user.User, wasPlaying bool) error {
	removed, err := r.Roster.RemovePlayer(ctx, v.ID, member.ID)
	if err != nil {
		return fmt.Errorf("remove player: %w", err)
	}
	if !removed {
		return nil
	}
	logger.Info("player left", "event", "player_left", "voting_id", string(v.ID), "was_playing", wasPlaying)
	if !wasPlaying || v.State != StateClosed {
		return nil
	}

	gameAfter := len(starters) - 1
	votingAfter := len(roster) - 1
	var text string
	switch {
	case gameAfter < r.MinPlayersCount:
		text = leftShortMessage(member, gameAfter, r.MinPlayersCount)
	case gameAfter < votingAfter:
		promoted := roster[gameAfter+1].PlayerID
		joined := user.User{ID: promoted}
		if r.Users != nil {
			users, err := resolveUsers(ctx, r.Users, []int64{promoted})
			if err != nil {
				logger.Error("failed to resolve promoted player", "player_id", promoted, "error", err)
			} else {
				joined = users[0]
			}
		}
		text = swapMessage(member, joined)
	default:
		text = leftMessage(member, gameAfter, sch.PlayersCount)
	}
	r.notify(logger, v.ChatID, text)
	return nil
}

func (r Reconciler) notify(logger *slog.Logger, chatID int64, text string) {
	if err := r.Messenger.SendMessage(chatID, text); err != nil {
		logger.Error("failed to send notification", "event", "notify_failed", "chat_id", chatID, "error", err)
	}
}
