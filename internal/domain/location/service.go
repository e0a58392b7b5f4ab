package location

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// LocationService описывает use-case'ы вокруг локаций.
type LocationService interface {
	Get(ctx context.Context, id LocationID) (*Location, error)
	List(ctx context.Context) ([]Location, error)
	Create(ctx context.Context, input CreateLocationInput) (*Location, error)
	Delete(ctx context.Context, id LocationID) error
}

type CreateLocationInput struct {
	Name          string
	Address       string
	AddressMapURL string
}

type locationService struct {
	repo LocationRepository
}

func NewService(repo LocationRepository) LocationService {
	return &locationService{repo: repo}
}

func (s *locationService) Get(ctx context.Context, id LocationID) (*Location, error) {
	loc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, ErrLocationNotFound
	}
	return loc, nil
}

func (s *locationService) List(ctx context.Context) ([]Location, error) {
	return s.repo.List(ctx)
}

func (s *locationService) Create(ctx context.Context, in CreateLocationInput) (*Location, error) {
	loc := &Location{
		ID:            LocationID(uuid.New().String()),
		Name:          strings.TrimSpace(in.Name),
		Address:       strings.TrimSpace(in.Address),
		AddressMapURL: strings.TrimSpace(in.AddressMapURL),
	}
	if loc.Name == "" {
		return nil, ErrNameRequired
	}

	if err := s.repo.Save(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *locationService) Delete(ctx context.Context, id LocationID) error {
	return s.repo.Delete(ctx, id)
}
