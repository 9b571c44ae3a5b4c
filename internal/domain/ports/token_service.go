package ports

import (
	"time"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
)

// SessionPrincipal é o ator autenticado extraído de um token de sessão
type SessionPrincipal struct {
	ID    uint
	Email string
	Name  string
	Role  entities.Role
}

// EmailVerification é o payload de um token de verificação de email
type EmailVerification struct {
	UserID uint
	Email  string
}

// TokenService emite e verifica tokens assinados com tempo de vida
// limitado, um método por propósito. A verificação falha com
// errors.ErrTokenExpired, errors.ErrTokenMalformed ou
// errors.ErrWrongTokenPurpose.
type TokenService interface {
	IssueSessionToken(principal SessionPrincipal) (string, error)
	VerifySessionToken(token string) (*SessionPrincipal, error)

	IssueEmailVerificationToken(userID uint, email string) (string, error)
	VerifyEmailVerificationToken(token string) (*EmailVerification, error)

	IssuePasswordResetToken(email string) (token string, expiresAt time.Time, err error)
	VerifyPasswordResetToken(token string) (email string, err error)
}
