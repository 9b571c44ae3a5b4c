package repositories

import (
	"context"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários.
// Métodos Find* retornam (nil, nil) quando o registro não existe.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	SearchByName(ctx context.Context, name string) ([]*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	// Delete remove o usuário e retorna se alguma linha foi afetada
	Delete(ctx context.Context, id uint) (bool, error)
}
