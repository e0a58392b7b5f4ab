package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/voting"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type votingRepository struct {
	db *gorm.DB
}

func NewVotingRepository(db *gorm.DB) voting.VotingRepository {
	return &votingRepository{db: db}
}

func (r *votingRepository) Create(ctx context.Context, v *voting.Voting) error {
	model := &models.VotingGORM{
		VotingID:       string(v.ID),
		GameScheduleID: string(v.GameScheduleID),
		PollID:         v.PollID,
		ChatID:         v.ChatID,
		MessageID:      v.MessageID,
		GameTime:       v.GameTime,
		State:          string(v.State),
		CreatedAt:      v.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return voting.ErrVotingAlreadyActive
		}
		return err
	}
	return nil
}

func (r *votingRepository) GetByPollID(ctx context.Context, pollID string) (*voting.Voting, error) {
	var model models.VotingGORM
	if err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	v := toVoting(model)
	return &v, nil
}

func (r *votingRepository) ListByState(ctx context.Context, state voting.State) ([]voting.Voting, error) {
	var rows []models.VotingGORM
	if err := r.db.WithContext(ctx).
		Where("state = ?", string(state)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]voting.Voting, len(rows))
	for i, m := range rows {
		out[i] = toVoting(m)
	}
	return out, nil
}

func (r *votingRepository) UpdateState(ctx context.Context, id voting.VotingID, state voting.State) error {
	res := r.db.WithContext(ctx).
		Model(&models.VotingGORM{}).
		Where("voting_id = ?", string(id)).
		Update("state", string(state))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", voting.ErrVotingNotFound, id)
	}
	return nil
}

func toVoting(m models.VotingGORM) voting.Voting {
	return voting.Voting{
		ID:             voting.VotingID(m.VotingID),
		GameScheduleID: schedule.ScheduleID(m.GameScheduleID),
		PollID:         m.PollID,
		ChatID:         m.ChatID,
		MessageID:      m.MessageID,
		GameTime:       m.GameTime,
		State:          voting.State(m.State),
		CreatedAt:      m.CreatedAt,
	}
}

type rosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) voting.RosterRepository {
	return &rosterRepository{db: db}
}

// AddPlayer полагается на уникальный индекс (voting_id, player_id): повторная запись ничего не вставляет
func (r *rosterRepository) AddPlayer(ctx context.Context, p voting.Player) (bool, error) {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	model := &models.VotingPlayerGORM{
		VotingID:  string(p.VotingID),
		PlayerID:  p.PlayerID,
		CreatedAt: createdAt,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return false, nil
		}
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *rosterRepository) RemovePlayer(ctx context.Context, votingID voting.VotingID, playerID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("voting_id = ? AND player_id = ?", string(votingID), playerID).
		Delete(&models.VotingPlayerGORM{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *rosterRepository) ListPlayers(ctx context.Context, votingID voting.VotingID) ([]voting.Player, error) {
	var rows []models.VotingPlayerGORM
	if err := r.db.WithContext(ctx).
		Where("voting_id = ?", string(votingID)).
		Order("created_at ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]voting.Player, len(rows))
	for i, m := range rows {
		out[i] = voting.Player{
			VotingID:  voting.VotingID(m.VotingID),
			PlayerID:  m.PlayerID,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}
