package schedule

import "context"

// ScheduleRepository описывает, что нужно домену от хранилища расписаний
type ScheduleRepository interface {
	// GetByID возвращает расписание или nil, если не найдено
	GetByID(ctx context.Context, id ScheduleID) (*GameSchedule, error)

	// ListByState возвращает расписания в заданном состоянии
	ListByState(ctx context.Context, state State) ([]GameSchedule, error)

	// List возвращает все расписания
	List(ctx context.Context) ([]GameSchedule, error)

	// Save создаёт или обновляет расписание
	Save(ctx context.Context, s *GameSchedule) error
}
