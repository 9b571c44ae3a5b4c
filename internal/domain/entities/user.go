package entities

import (
	"time"

	"github.com/rafabene/blogpro-backend/internal/domain/valueobjects"
)

// User representa um usuário da plataforma
type User struct {
	ID           uint
	Name         string
	Email        valueobjects.Email
	PasswordHash string
	Role         Role
	IsVerified   bool
	IsActive     bool
	ProfileImage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// MarkVerified marca o email do usuário como verificado
func (u *User) MarkVerified() {
	u.IsVerified = true
}

// Deactivate desativa o usuário (soft disable)
func (u *User) Deactivate() {
	u.IsActive = false
}
