package user

import (
	"context"
	"time"
)

type UserService interface {
	Get(ctx context.Context, id int64) (*User, error)
	ListByIDs(ctx context.Context, ids []int64) ([]User, error)
	List(ctx context.Context) ([]User, error)
	// UpsertProfile обновляет имя/username из Telegram, не трогая admin и chat_id
	UpsertProfile(ctx context.Context, profile User) (*User, error)
}

type userService struct {
	repository UserRepository
	now        func() time.Time
}

func NewUserService(repository UserRepository) UserService {
	return &userService{repository: repository, now: time.Now}
}

func (s *userService) Get(ctx context.Context, id int64) (*User, error) {
	usr, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if usr == nil {
		return nil, ErrUserNotFound
	}
	return usr, nil
}

func (s *userService) ListByIDs(ctx context.Context, ids []int64) ([]User, error) {
	if len(ids) == 0 {
		return []User{}, nil
	}
	return s.repository.ListByIDs(ctx, ids)
}

func (s *userService) List(ctx context.Context) ([]User, error) {
	return s.repository.List(ctx)
}

func (s *userService) UpsertProfile(ctx context.Context, profile User) (*User, error) {
	existing, err := s.repository.GetByID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if existing == nil {
		profile.CreatedAt = now
		profile.UpdatedAt = now
		if err := s.repository.Save(ctx, &profile); err != nil {
			return nil, err
		}
		return &profile, nil
	}

	changed := false
	if profile.FirstName != "" && profile.FirstName != existing.FirstName {
		existing.FirstName = profile.FirstName
		changed = true
	}
	if profile.LastName != existing.LastName && (profile.FirstName != "" || profile.LastName != "") {
		existing.LastName = profile.LastName
		changed = true
	}
	if profile.Username != "" && profile.Username != existing.Username {
		existing.Username = profile.Username
		changed = true
	}
	if !changed {
		return existing, nil
	}

	existing.UpdatedAt = now
	if err := s.repository.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}
