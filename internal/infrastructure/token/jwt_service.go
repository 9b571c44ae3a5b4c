package token

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/errors"
	"github.com/rafabene/blogpro-backend/internal/domain/ports"
)

// Tempo de vida de cada propósito de token
const (
	SessionTTL           = 2 * time.Hour
	EmailVerificationTTL = 24 * time.Hour
	PasswordResetTTL     = 1 * time.Hour
)

// Tags de propósito gravadas no payload dos tokens não-sessão
const (
	purposeEmailVerification = "email_verification"
	purposePasswordReset     = "password_reset"
)

var signingMethods = []string{jwt.SigningMethodHS256.Alg()}

// JWTService implementa ports.TokenService assinando payloads com HMAC
// e um segredo compartilhado
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService cria um novo JWTService. O segredo é obrigatório.
func NewJWTService(secret string) (*JWTService, error) {
	if secret == "" {
		return nil, stderrors.New("jwt signing secret must not be empty")
	}
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

type sessionClaims struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Purpose string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

type emailVerificationClaims struct {
	UserID  uint   `json:"userId"`
	Email   string `json:"email"`
	Purpose string `json:"type"`
	jwt.RegisteredClaims
}

type passwordResetClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"type"`
	jwt.RegisteredClaims
}

// IssueSessionToken emite um token de sessão com a identidade do principal
func (s *JWTService) IssueSessionToken(principal ports.SessionPrincipal) (string, error) {
	claims := sessionClaims{
		ID:               principal.ID,
		Email:            principal.Email,
		Name:             principal.Name,
		Role:             string(principal.Role),
		RegisteredClaims: s.registeredClaims(SessionTTL),
	}
	return s.sign(claims)
}

// VerifySessionToken valida um token de sessão e extrai o principal
func (s *JWTService) VerifySessionToken(token string) (*ports.SessionPrincipal, error) {
	var claims sessionClaims
	if err := s.parse(token, &claims); err != nil {
		return nil, err
	}
	// Tokens de verificação/reset carregam uma tag de propósito e não
	// servem como sessão
	if claims.Purpose != "" {
		return nil, errors.ErrWrongTokenPurpose
	}
	return &ports.SessionPrincipal{
		ID:    claims.ID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  entities.Role(claims.Role),
	}, nil
}

// IssueEmailVerificationToken emite um token de verificação de email
func (s *JWTService) IssueEmailVerificationToken(userID uint, email string) (string, error) {
	claims := emailVerificationClaims{
		UserID:           userID,
		Email:            email,
		Purpose:          purposeEmailVerification,
		RegisteredClaims: s.registeredClaims(EmailVerificationTTL),
	}
	return s.sign(claims)
}

// VerifyEmailVerificationToken valida um token de verificação de email
func (s *JWTService) VerifyEmailVerificationToken(token string) (*ports.EmailVerification, error) {
	var claims emailVerificationClaims
	if err := s.parse(token, &claims); err != nil {
		return nil, err
	}
	if claims.Purpose != "" && claims.Purpose != purposeEmailVerification {
		return nil, errors.ErrWrongTokenPurpose
	}
	return &ports.EmailVerification{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

// IssuePasswordResetToken emite um token de redefinição de senha
func (s *JWTService) IssuePasswordResetToken(email string) (string, time.Time, error) {
	expiresAt := s.now().Add(PasswordResetTTL)
	claims := passwordResetClaims{
		Email:            email,
		Purpose:          purposePasswordReset,
		RegisteredClaims: s.registeredClaims(PasswordResetTTL),
	}
	signed, err := s.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// VerifyPasswordResetToken valida um token de redefinição e extrai o email
func (s *JWTService) VerifyPasswordResetToken(token string) (string, error) {
	var claims passwordResetClaims
	if err := s.parse(token, &claims); err != nil {
		return "", err
	}
	if claims.Purpose != "" && claims.Purpose != purposePasswordReset {
		return "", errors.ErrWrongTokenPurpose
	}
	return claims.Email, nil
}

func (s *JWTService) registeredClaims(ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func (s *JWTService) sign(claims jwt.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *JWTService) parse(token string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods(signingMethods),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return errors.ErrTokenExpired
		}
		return errors.ErrTokenMalformed
	}
	return nil
}
