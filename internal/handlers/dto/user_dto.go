package dto

import (
	"time"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
)

// UpdateProfileRequest representa a atualização do próprio perfil
type UpdateProfileRequest struct {
	Name         *string `json:"name" binding:"omitempty,min=2,max=100"`
	ProfileImage *string `json:"profileImage" binding:"omitempty,max=500"`
}

// AdminUpdateUserRequest representa a atualização administrativa de um usuário
type AdminUpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Role     *string `json:"role" binding:"omitempty,oneof=user admin superuser"`
	IsActive *bool   `json:"isActive"`
}

// UserResponse representa a projeção pública de um usuário;
// o hash da senha nunca sai daqui
type UserResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsVerified   bool      `json:"isVerified"`
	IsActive     bool      `json:"isActive"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email.String(),
		Role:         string(user.Role),
		IsVerified:   user.IsVerified,
		IsActive:     user.IsActive,
		ProfileImage: user.ProfileImage,
		CreatedAt:    user.CreatedAt,
	}
}

// ToUserResponses converte uma lista de entidades User para UserResponse
func ToUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i, user := range users {
		responses[i] = ToUserResponse(user)
	}
	return responses
}
