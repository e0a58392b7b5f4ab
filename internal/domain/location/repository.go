package location

import "context"

// LocationRepository описывает, что нужно домену от хранилища локаций.
type LocationRepository interface {
	// GetByID возвращает локацию по ID или nil, если не найдено.
	GetByID(ctx context.Context, id LocationID) (*Location, error)

	// List возвращает все локации.
	List(ctx context.Context) ([]Location, error)

	// Save создаёт или обновляет локацию.
	Save(ctx context.Context, loc *Location) error

	// Delete удаляет локацию по ID.
	Delete(ctx context.Context, id LocationID) error
}
