package services

import (
	"context"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/errors"
	"github.com/rafabene/blogpro-backend/internal/domain/ports"
	"github.com/rafabene/blogpro-backend/internal/domain/repositories"
	"github.com/rafabene/blogpro-backend/internal/domain/valueobjects"
)

// UserService contém a lógica de negócio para usuários
type UserService struct {
	users       repositories.UserRepository
	resetTokens repositories.PasswordResetTokenRepository
	uow         ports.UnitOfWork
	logger      ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	users repositories.UserRepository,
	resetTokens repositories.PasswordResetTokenRepository,
	uow ports.UnitOfWork,
	logger ports.Logger,
) *UserService {
	return &UserService{
		users:       users,
		resetTokens: resetTokens,
		uow:         uow,
		logger:      logger,
	}
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if user == nil {
		return nil, errors.NotFound("User")
	}
	return user, nil
}

// Search busca usuários por trecho do nome; nome vazio retorna lista vazia
func (s *UserService) Search(ctx context.Context, name string) ([]*entities.User, error) {
	if name == "" {
		return []*entities.User{}, nil
	}

	users, err := s.users.SearchByName(ctx, name)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return users, nil
}

// ListUsers lista todos os usuários (rota administrativa)
func (s *UserService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return users, nil
}

// UpdateProfileInput representa a atualização do próprio perfil
type UpdateProfileInput struct {
	Name         *string
	ProfileImage *string
}

// UpdateProfile atualiza nome e imagem de perfil do próprio usuário
func (s *UserService) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*entities.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.ProfileImage != nil {
		user.ProfileImage = input.ProfileImage
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, errors.Internal(err)
	}

	return user, nil
}

// AdminUpdateInput representa a atualização administrativa de um usuário
type AdminUpdateInput struct {
	Name     *string
	Email    *string
	Role     *string
	IsActive *bool
}

// AdminUpdate atualiza um usuário em nome de um administrador.
// Mudança de email re-verifica a unicidade.
func (s *UserService) AdminUpdate(ctx context.Context, id uint, input AdminUpdateInput) (*entities.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email, err := valueobjects.NewEmail(*input.Email)
		if err != nil {
			return nil, errors.Validation("invalid email address")
		}
		if !email.Equals(user.Email) {
			existing, err := s.users.FindByEmail(ctx, email.String())
			if err != nil {
				return nil, errors.Internal(err)
			}
			if existing != nil {
				return nil, errors.Conflict("Email is already in use")
			}
			user.Email = email
		}
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		role := entities.Role(*input.Role)
		if !role.IsValid() {
			return nil, errors.Validation("invalid role")
		}
		user.Role = role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("user updated by admin", "user_id", user.ID)
	return user, nil
}

// DeleteUser remove um usuário e seus tokens de redefinição
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.resetTokens.DeleteForUser(txCtx, id); err != nil {
			return errors.Internal(err)
		}

		deleted, err := s.users.Delete(txCtx, id)
		if err != nil {
			return errors.Internal(err)
		}
		if !deleted {
			return errors.NotFound("User")
		}

		s.logger.Info("user deleted", "user_id", id)
		return nil
	})
}
