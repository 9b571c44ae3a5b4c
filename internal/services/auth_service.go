package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/errors"
	"github.com/rafabene/blogpro-backend/internal/domain/ports"
	"github.com/rafabene/blogpro-backend/internal/domain/repositories"
	"github.com/rafabene/blogpro-backend/internal/domain/valueobjects"
)

// AuthService contém a lógica de negócio de autenticação: registro,
// login, verificação de email e redefinição de senha
type AuthService struct {
	users       repositories.UserRepository
	resetTokens repositories.PasswordResetTokenRepository
	uow         ports.UnitOfWork
	tokens      ports.TokenService
	mailer      ports.Mailer
	logger      ports.Logger
	frontendURL string
	resetURL    string
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	users repositories.UserRepository,
	resetTokens repositories.PasswordResetTokenRepository,
	uow ports.UnitOfWork,
	tokens ports.TokenService,
	mailer ports.Mailer,
	logger ports.Logger,
	frontendURL string,
	resetURL string,
) *AuthService {
	return &AuthService{
		users:       users,
		resetTokens: resetTokens,
		uow:         uow,
		tokens:      tokens,
		mailer:      mailer,
		logger:      logger,
		frontendURL: frontendURL,
		resetURL:    resetURL,
	}
}

// RegisterInput representa os dados para registrar um usuário
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// Register registra um novo usuário com o role fixado pelo endpoint de
// entrada. O endpoint self-service (allowed = user) aceita role omitido;
// os endpoints privilegiados exigem que o role pedido seja exatamente o
// permitido.
func (s *AuthService) Register(ctx context.Context, input RegisterInput, allowed entities.Role) (*entities.User, error) {
	if allowed == entities.RoleUser {
		if input.Role != "" && input.Role != string(entities.RoleUser) {
			return nil, errors.Forbidden("Only user registration allowed here.")
		}
	} else if input.Role != string(allowed) {
		return nil, errors.Forbidden(fmt.Sprintf("Only %s registration allowed here.", allowed))
	}

	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.Validation("invalid email address")
	}

	existing, err := s.users.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, errors.Internal(err)
	}
	if existing != nil {
		return nil, errors.Conflict("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Internal(err)
	}

	user := &entities.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         allowed,
		IsVerified:   false,
		IsActive:     true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", email.String(), "role", allowed)

	// Contas privilegiadas são criadas fora do fluxo self-service e não
	// recebem o email de verificação
	if allowed == entities.RoleUser {
		if err := s.sendVerificationEmail(ctx, user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (s *AuthService) sendVerificationEmail(ctx context.Context, user *entities.User) error {
	token, err := s.tokens.IssueEmailVerificationToken(user.ID, user.Email.String())
	if err != nil {
		return errors.Internal(err)
	}

	link := fmt.Sprintf("%s/verify-email/%s", s.frontendURL, token)
	if err := s.mailer.SendVerificationEmail(ctx, user.Email.String(), link); err != nil {
		return errors.Internal(err)
	}

	return nil
}

// Login autentica o usuário e emite um token de sessão
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, string, error) {
	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return nil, "", errors.Unauthorized("Invalid email or password")
	}

	user, err := s.users.FindByEmail(ctx, normalized.String())
	if err != nil {
		return nil, "", errors.Internal(err)
	}
	if user == nil {
		return nil, "", errors.Unauthorized("Invalid email or password")
	}

	// bcrypt compara em tempo constante
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.Unauthorized("Invalid email or password")
	}

	if !user.IsVerified {
		return nil, "", errors.Forbidden("Please verify your email before logging in")
	}

	if !user.IsActive {
		return nil, "", errors.Forbidden("Your account has been deactivated")
	}

	token, err := s.tokens.IssueSessionToken(ports.SessionPrincipal{
		ID:    user.ID,
		Email: user.Email.String(),
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		return nil, "", errors.Internal(err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return user, token, nil
}

// VerifyEmail resgata um token de verificação e marca o email como
// verificado, exatamente uma vez
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	payload, err := s.tokens.VerifyEmailVerificationToken(token)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, payload.UserID)
	if err != nil {
		return errors.Internal(err)
	}
	if user == nil {
		return errors.NotFound("User")
	}

	if user.IsVerified {
		return errors.Conflict("Email is already verified")
	}

	user.MarkVerified()
	if err := s.users.Update(ctx, user); err != nil {
		return errors.Internal(err)
	}

	s.logger.Info("email verified", "user_id", user.ID)
	return nil
}

// ForgotPassword emite um token de redefinição e envia o link por email.
// Tokens anteriores do usuário são invalidados.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	normalized, err := valueobjects.NewEmail(email)
	if err != nil {
		return errors.E(errors.KindNotFound, "No user found with that email address")
	}

	user, err := s.users.FindByEmail(ctx, normalized.String())
	if err != nil {
		return errors.Internal(err)
	}
	if user == nil {
		return errors.E(errors.KindNotFound, "No user found with that email address")
	}

	token, expiresAt, err := s.tokens.IssuePasswordResetToken(user.Email.String())
	if err != nil {
		return errors.Internal(err)
	}

	resetToken := &entities.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := s.resetTokens.Replace(ctx, resetToken); err != nil {
		return errors.Internal(err)
	}

	link := fmt.Sprintf("%s/%s", s.resetURL, token)
	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email.String(), link); err != nil {
		return errors.Internal(err)
	}

	s.logger.Info("password reset requested", "user_id", user.ID)
	return nil
}

// ResetPassword resgata um token de redefinição, consome o registro
// armazenado e substitui o hash da senha em uma transação
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	email, err := s.tokens.VerifyPasswordResetToken(token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Internal(err)
	}

	return s.uow.WithTransaction(ctx, func(txCtx context.Context) error {
		user, err := s.users.FindByEmail(txCtx, email)
		if err != nil {
			return errors.Internal(err)
		}
		if user == nil {
			return errors.NotFound("User")
		}

		// Consome o token: um segundo resgate, ou o resgate de um token
		// substituído por um pedido mais novo, falha aqui
		consumed, err := s.resetTokens.DeleteByToken(txCtx, token)
		if err != nil {
			return errors.Internal(err)
		}
		if !consumed {
			return errors.Unauthorized("Invalid reset token. Please request a new password reset link.")
		}

		user.PasswordHash = string(hash)
		if err := s.users.Update(txCtx, user); err != nil {
			return errors.Internal(err)
		}

		s.logger.Info("password reset", "user_id", user.ID)
		return nil
	})
}
