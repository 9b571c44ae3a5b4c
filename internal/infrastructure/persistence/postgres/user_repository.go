package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/repositories"
	"github.com/rafabene/blogpro-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	model := toUserModel(user)

	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	user.ID = model.ID
	user.CreatedAt = time.Unix(model.CreatedAt, 0)
	user.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	var model UserModel

	db := dbFromContext(ctx, r.db)
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&model)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	db := dbFromContext(ctx, r.db)
	if err := db.Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toUserEntity(&model)
}

func (r *UserRepository) SearchByName(ctx context.Context, name string) ([]*entities.User, error) {
	var models []*UserModel

	db := dbFromContext(ctx, r.db)
	err := db.Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("name").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	return toUserEntities(models)
}

func (r *UserRepository) List(ctx context.Context) ([]*entities.User, error) {
	var models []*UserModel

	db := dbFromContext(ctx, r.db)
	if err := db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	return toUserEntities(models)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := toUserModel(user)

	db := dbFromContext(ctx, r.db)
	return db.Save(model).Error
}

func (r *UserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	db := dbFromContext(ctx, r.db)
	result := db.Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Conversores
func toUserModel(user *entities.User) *UserModel {
	model := &UserModel{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email.String(),
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
		IsVerified:   user.IsVerified,
		IsActive:     user.IsActive,
		ProfileImage: user.ProfileImage,
	}
	// Timestamps zerados ficam a cargo do autoCreateTime/autoUpdateTime
	if !user.CreatedAt.IsZero() {
		model.CreatedAt = user.CreatedAt.Unix()
	}
	if !user.UpdatedAt.IsZero() {
		model.UpdatedAt = user.UpdatedAt.Unix()
	}
	return model
}

func toUserEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	return &entities.User{
		ID:           model.ID,
		Name:         model.Name,
		Email:        email,
		PasswordHash: model.PasswordHash,
		Role:         entities.Role(model.Role),
		IsVerified:   model.IsVerified,
		IsActive:     model.IsActive,
		ProfileImage: model.ProfileImage,
		CreatedAt:    time.Unix(model.CreatedAt, 0),
		UpdatedAt:    time.Unix(model.UpdatedAt, 0),
	}, nil
}

func toUserEntities(models []*UserModel) ([]*entities.User, error) {
	users := make([]*entities.User, 0, len(models))

	for _, model := range models {
		user, err := toUserEntity(model)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}
