package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScheduleService описывает use-case'ы вокруг расписаний игр
type ScheduleService interface {
	Get(ctx context.Context, id ScheduleID) (*GameSchedule, error)
	List(ctx context.Context) ([]GameSchedule, error)
	ListActive(ctx context.Context) ([]GameSchedule, error)
	Create(ctx context.Context, input CreateScheduleInput) (*GameSchedule, error)
	Update(ctx context.Context, id ScheduleID, input UpdateScheduleInput) (*GameSchedule, error)
}

type scheduleService struct {
	repo ScheduleRepository
	now  func() time.Time
}

func NewScheduleService(repo ScheduleRepository) ScheduleService {
	return &scheduleService{repo: repo, now: time.Now}
}

func (s *scheduleService) Get(ctx context.Context, id ScheduleID) (*GameSchedule, error) {
	sch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sch == nil {
		return nil, ErrScheduleNotFound
	}
	return sch, nil
}

func (s *scheduleService) List(ctx context.Context) ([]GameSchedule, error) {
	return s.repo.List(ctx)
}

func (s *scheduleService) ListActive(ctx context.Context) ([]GameSchedule, error) {
	return s.repo.ListByState(ctx, StateActive)
}

func (s *scheduleService) Create(ctx context.Context, in CreateScheduleInput) (*GameSchedule, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	sch := &GameSchedule{
		ID:                  ScheduleID(uuid.New().String()),
		DayOfWeek:           in.DayOfWeek,
		Time:                in.Time,
		Duration:            in.Duration,
		LocationID:          in.LocationID,
		VotingInAdvanceDays: in.VotingInAdvanceDays,
		VotingTime:          in.VotingTime,
		PlayersCount:        in.PlayersCount,
		State:               StateActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Save(ctx, sch); err != nil {
		return nil, err
	}
	return sch, nil
}

func (s *scheduleService) Update(ctx context.Context, id ScheduleID, in UpdateScheduleInput) (*GameSchedule, error) {
	sch, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.DayOfWeek != nil {
		sch.DayOfWeek = *in.DayOfWeek
	}
	if in.Time != nil {
		sch.Time = *in.Time
	}
	if in.Duration != nil {
		sch.Duration = *in.Duration
	}
	if in.LocationID != nil {
		sch.LocationID = *in.LocationID
	}
	if in.VotingInAdvanceDays != nil {
		sch.VotingInAdvanceDays = *in.VotingInAdvanceDays
	}
	if in.VotingTime != nil {
		sch.VotingTime = *in.VotingTime
	}
	if in.PlayersCount != nil {
		sch.PlayersCount = *in.PlayersCount
	}
	if in.State != nil {
		if *in.State != StateActive && *in.State != StateInactive {
			return nil, ErrInvalidState
		}
		sch.State = *in.State
	}

	// Инварианты те же, что и при создании
	check := CreateScheduleInput{
		DayOfWeek:           sch.DayOfWeek,
		PlayersCount:        sch.PlayersCount,
		VotingInAdvanceDays: sch.VotingInAdvanceDays,
	}
	if err := check.Validate(); err != nil {
		return nil, err
	}

	sch.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, sch); err != nil {
		return nil, err
	}
	return sch, nil
}
