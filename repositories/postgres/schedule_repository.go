package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/schedule"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/models"

	"gorm.io/gorm"
)

type scheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) GetByID(ctx context.Context, id schedule.ScheduleID) (*schedule.GameSchedule, error) {
	var model models.GameScheduleGORM
	if err := r.db.WithContext(ctx).
		Where("schedule_id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	sch, err := toSchedule(model)
	if err != nil {
		return nil, err
	}
	return &sch, nil
}

func (r *scheduleRepository) ListByState(ctx context.Context, state schedule.State) ([]schedule.GameSchedule, error) {
	return r.find(r.db.WithContext(ctx).Where("state = ?", string(state)))
}

func (r *scheduleRepository) List(ctx context.Context) ([]schedule.GameSchedule, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *scheduleRepository) find(q *gorm.DB) ([]schedule.GameSchedule, error) {
	var rows []models.GameScheduleGORM
	if err := q.Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]schedule.GameSchedule, 0, len(rows))
	for _, m := range rows {
		sch, err := toSchedule(m)
		if err != nil {
			return nil, err
		}
		out = append(out, sch)
	}
	return out, nil
}

func (r *scheduleRepository) Save(ctx context.Context, s *schedule.GameSchedule) error {
	model := &models.GameScheduleGORM{
		ScheduleID:          string(s.ID),
		DayOfWeek:           schedule.FormatWeekday(s.DayOfWeek),
		Time:                s.Time.String(),
		DurationMinutes:     int(s.Duration / time.Minute),
		LocationID:          string(s.LocationID),
		VotingInAdvanceDays: s.VotingInAdvanceDays,
		VotingTime:          s.VotingTime.String(),
		PlayersCount:        s.PlayersCount,
		State:               string(s.State),
	}

	return r.db.WithContext(ctx).
		Where("schedule_id = ?", s.ID).
		Assign(model).
		FirstOrCreate(model).Error
}

func toSchedule(m models.GameScheduleGORM) (schedule.GameSchedule, error) {
	day, err := schedule.ParseWeekday(m.DayOfWeek)
	if err != nil {
		return schedule.GameSchedule{}, fmt.Errorf("schedule %s: %w", m.ScheduleID, err)
	}
	at, err := schedule.ParseTimeOfDay(m.Time)
	if err != nil {
		return schedule.GameSchedule{}, fmt.Errorf("schedule %s: %w", m.ScheduleID, err)
	}
	votingAt, err := schedule.ParseTimeOfDay(m.VotingTime)
	if err != nil {
		return schedule.GameSchedule{}, fmt.Errorf("schedule %s: %w", m.ScheduleID, err)
	}
	return schedule.GameSchedule{
		ID:                  schedule.ScheduleID(m.ScheduleID),
		DayOfWeek:           day,
		Time:                at,
		Duration:            time.Duration(m.DurationMinutes) * time.Minute,
		LocationID:          location.LocationID(m.LocationID),
		VotingInAdvanceDays: m.VotingInAdvanceDays,
		VotingTime:          votingAt,
		PlayersCount:        m.PlayersCount,
		State:               schedule.State(m.State),
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}
