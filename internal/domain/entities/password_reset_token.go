package entities

import "time"

// PasswordResetToken registra um token de redefinição de senha emitido.
// Existe no máximo um token utilizável por usuário: a emissão de um novo
// remove os anteriores e o resgate remove o próprio registro.
type PasswordResetToken struct {
	ID        string
	UserID    uint
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired verifica se o token já expirou
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
