package repositories

import (
	"context"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
)

// PasswordResetTokenRepository define a interface para persistência de
// tokens de redefinição de senha
type PasswordResetTokenRepository interface {
	// Replace remove os tokens anteriores do usuário e grava o novo,
	// mantendo no máximo um token utilizável por usuário
	Replace(ctx context.Context, token *entities.PasswordResetToken) error
	// FindByToken retorna (nil, nil) quando o token não existe
	FindByToken(ctx context.Context, token string) (*entities.PasswordResetToken, error)
	// DeleteByToken consome o token; retorna se alguma linha foi afetada
	DeleteByToken(ctx context.Context, token string) (bool, error)
	DeleteForUser(ctx context.Context, userID uint) error
}
