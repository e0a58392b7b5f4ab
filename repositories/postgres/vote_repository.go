package postgres

import (
	"context"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/rating"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/models"

	"gorm.io/gorm"
)

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) rating.VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Save(ctx context.Context, v *rating.Vote) error {
	return r.db.WithContext(ctx).Create(&models.VoteGORM{
		VoteID:    v.ID,
		VoterID:   v.VoterID,
		PlayerA:   v.PlayerA,
		PlayerB:   v.PlayerB,
		WinnerID:  v.WinnerID,
		CreatedAt: v.CreatedAt,
	}).Error
}

func (r *voteRepository) List(ctx context.Context) ([]rating.Vote, error) {
	var rows []models.VoteGORM
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]rating.Vote, len(rows))
	for i, m := range rows {
		out[i] = rating.Vote{
			ID:        m.VoteID,
			VoterID:   m.VoterID,
			PlayerA:   m.PlayerA,
			PlayerB:   m.PlayerB,
			WinnerID:  m.WinnerID,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}
