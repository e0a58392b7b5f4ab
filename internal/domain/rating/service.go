package rating

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/logging"
)

type PlayerDirectory interface {
	List(ctx context.Context) ([]user.User, error)
}

type RatingService interface {
	CalculateRatings(ctx context.Context) ([]PlayerRating, error)
	RecordVote(ctx context.Context, v Vote) (*Vote, error)
}

type ratingService struct {
	votes   VoteRepository
	players PlayerDirectory
	logger  *slog.Logger
	now     func() time.Time
}

func NewRatingService(votes VoteRepository, players PlayerDirectory, logger *slog.Logger) RatingService {
	return &ratingService{
		votes:   votes,
		players: players,
		logger:  logging.ResolveLogger(logger).With("module", "rating"),
		now:     time.Now,
	}
}

// CalculateRatings возвращает рейтинг всех известных игроков по убыванию, при равенстве по ID.
func (s *ratingService) CalculateRatings(ctx context.Context) ([]PlayerRating, error) {
	votes, err := s.votes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	users, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	scores := Calculate(votes)
	out := make([]PlayerRating, 0, len(users)+len(scores))
	seen := make(map[int64]bool, len(users))
	for _, u := range users {
		seen[u.ID] = true
		out = append(out, PlayerRating{
			ID:        u.ID,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Username:  u.Username,
			PhotoURL:  u.PhotoURL,
			Rating:    scoreOf(scores, u.ID),
		})
	}
	// голоса могут ссылаться на игроков, которых ещё нет в справочнике
	for id, score := range scores {
		if !seen[id] {
			out = append(out, PlayerRating{ID: id, Rating: score})
		}
	}
	slices.SortFunc(out, func(a, b PlayerRating) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func scoreOf(scores map[int64]float64, id int64) float64 {
	if r, ok := scores[id]; ok {
		return r
	}
	return BaseRating
}

func (s *ratingService) RecordVote(ctx context.Context, v Vote) (*Vote, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	v.ID = uuid.NewString()
	v.CreatedAt = s.now()
	if err := s.votes.Save(ctx, &v); err != nil {
		return nil, fmt.Errorf("save vote: %w", err)
	}
	s.logger.Info("vote recorded", "event", "vote_recorded", "voter_id", v.VoterID, "resolved", v.Resolved())
	return &v, nil
}
