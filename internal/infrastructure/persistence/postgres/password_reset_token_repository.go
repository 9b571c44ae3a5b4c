package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/repositories"
)

// PasswordResetTokenRepository implementa repositories.PasswordResetTokenRepository
type PasswordResetTokenRepository struct {
	db *gorm.DB
}

// NewPasswordResetTokenRepository cria um novo PasswordResetTokenRepository
func NewPasswordResetTokenRepository(db *gorm.DB) repositories.PasswordResetTokenRepository {
	return &PasswordResetTokenRepository{db: db}
}

// Replace invalida os tokens anteriores do usuário e grava o novo
func (r *PasswordResetTokenRepository) Replace(ctx context.Context, token *entities.PasswordResetToken) error {
	db := dbFromContext(ctx, r.db)

	err := db.Where("user_id = ?", token.UserID).
		Delete(&PasswordResetTokenModel{}).Error
	if err != nil {
		return err
	}

	if token.ID == "" {
		token.ID = uuid.NewString()
	}

	model := toResetTokenModel(token)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	token.CreatedAt = time.Unix(model.CreatedAt, 0)
	token.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *PasswordResetTokenRepository) FindByToken(ctx context.Context, token string) (*entities.PasswordResetToken, error) {
	var model PasswordResetTokenModel

	db := dbFromContext(ctx, r.db)
	if err := db.Where("token = ?", token).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toResetTokenEntity(&model), nil
}

func (r *PasswordResetTokenRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	db := dbFromContext(ctx, r.db)
	result := db.Where("token = ?", token).Delete(&PasswordResetTokenModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PasswordResetTokenRepository) DeleteForUser(ctx context.Context, userID uint) error {
	db := dbFromContext(ctx, r.db)
	return db.Where("user_id = ?", userID).Delete(&PasswordResetTokenModel{}).Error
}

// Conversores
func toResetTokenModel(token *entities.PasswordResetToken) *PasswordResetTokenModel {
	return &PasswordResetTokenModel{
		ID:        token.ID,
		UserID:    token.UserID,
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt.Unix(),
	}
}

func toResetTokenEntity(model *PasswordResetTokenModel) *entities.PasswordResetToken {
	return &entities.PasswordResetToken{
		ID:        model.ID,
		UserID:    model.UserID,
		Token:     model.Token,
		ExpiresAt: time.Unix(model.ExpiresAt, 0),
		CreatedAt: time.Unix(model.CreatedAt, 0),
		UpdatedAt: time.Unix(model.UpdatedAt, 0),
	}
}
