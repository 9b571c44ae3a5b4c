package dto

// RegisterRequest representa a requisição de registro
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpassword"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin superuser"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest representa o pedido de redefinição de senha
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest representa a redefinição de senha com token
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,strongpassword"`
}

// LoginResponse representa a resposta de login: usuário + token de sessão
type LoginResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
