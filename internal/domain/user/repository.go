package user

import "context"

type UserRepository interface {
	// GetByID возвращает пользователя по Telegram ID или nil, если не найден
	GetByID(ctx context.Context, id int64) (*User, error)
	// ListByIDs возвращает найденных пользователей, порядок не гарантируется
	ListByIDs(ctx context.Context, ids []int64) ([]User, error)
	List(ctx context.Context) ([]User, error)
	Save(ctx context.Context, usr *User) error
}
