package postgres

import (
	"context"
	"errors"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.UserRepository {
	return &userRepository{db: db}
}

// Save вставляет пользователя или обновляет его поля по Telegram ID
func (ur *userRepository) Save(ctx context.Context, usr *user.User) error {
	model := &models.UserGORM{
		ID:        usr.ID,
		FirstName: usr.FirstName,
		LastName:  usr.LastName,
		Username:  usr.Username,
		PhotoURL:  usr.PhotoURL,
		Admin:     usr.Admin,
		ChatID:    usr.ChatID,
		CreatedAt: usr.CreatedAt,
		UpdatedAt: usr.UpdatedAt,
	}
	return ur.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "last_name", "username", "photo_url", "admin", "chat_id", "updated_at",
			}),
		}).
		Create(model).Error
}

func (ur *userRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var model models.UserGORM
	if err := ur.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return ur.modelToDomain(&model), nil
}

func (ur *userRepository) ListByIDs(ctx context.Context, ids []int64) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}
	var rows []models.UserGORM
	if err := ur.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return ur.modelsToDomain(rows), nil
}

func (ur *userRepository) List(ctx context.Context) ([]user.User, error) {
	var rows []models.UserGORM
	if err := ur.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return ur.modelsToDomain(rows), nil
}

func (ur *userRepository) modelsToDomain(rows []models.UserGORM) []user.User {
	users := make([]user.User, 0, len(rows))
	for i := range rows {
		users = append(users, *ur.modelToDomain(&rows[i]))
	}
	return users
}

// modelToDomain конвертирует GORM модель в доменную модель
func (ur *userRepository) modelToDomain(model *models.UserGORM) *user.User {
	return &user.User{
		ID:        model.ID,
		FirstName: model.FirstName,
		LastName:  model.LastName,
		Username:  model.Username,
		PhotoURL:  model.PhotoURL,
		Admin:     model.Admin,
		ChatID:    model.ChatID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
