package postgres

import (
	"context"
	"errors"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/models"

	"gorm.io/gorm"
)

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) location.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) GetByID(ctx context.Context, id location.LocationID) (*location.Location, error) {
	var model models.LocationGORM
	if err := r.db.WithContext(ctx).
		Where("location_id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	loc := toLocation(model)
	return &loc, nil
}

func (r *locationRepository) List(ctx context.Context) ([]location.Location, error) {
	var rows []models.LocationGORM
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	locations := make([]location.Location, len(rows))
	for i, m := range rows {
		locations[i] = toLocation(m)
	}
	return locations, nil
}

func (r *locationRepository) Save(ctx context.Context, loc *location.Location) error {
	model := &models.LocationGORM{
		LocationID:    string(loc.ID),
		Name:          loc.Name,
		Address:       loc.Address,
		AddressMapURL: loc.AddressMapURL,
	}

	return r.db.WithContext(ctx).
		Where("location_id = ?", loc.ID).
		Assign(model).
		FirstOrCreate(model).Error
}

func (r *locationRepository) Delete(ctx context.Context, id location.LocationID) error {
	return r.db.WithContext(ctx).
		Where("location_id = ?", id).
		Delete(&models.LocationGORM{}).Error
}

func toLocation(m models.LocationGORM) location.Location {
	return location.Location{
		ID:            location.LocationID(m.LocationID),
		Name:          m.Name,
		Address:       m.Address,
		AddressMapURL: m.AddressMapURL,
	}
}
