package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/ports"
	"github.com/rafabene/blogpro-backend/internal/handlers/dto"
	"github.com/rafabene/blogpro-backend/internal/services"
)

// AuthHandler lida com requisições HTTP de autenticação
type AuthHandler struct {
	authService *services.AuthService
	logger      ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService, logger ports.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register registra um usuário self-service (role user)
func (h *AuthHandler) Register(c *gin.Context) {
	h.register(c, entities.RoleUser,
		"User created successfully. Please check your email and verify your account.")
}

// PrivateRegister registra um usuário com role admin
func (h *AuthHandler) PrivateRegister(c *gin.Context) {
	h.register(c, entities.RoleAdmin, "Admin created successfully.")
}

// SuperRegister registra um usuário com role superuser
func (h *AuthHandler) SuperRegister(c *gin.Context) {
	h.register(c, entities.RoleSuperuser, "Superuser created successfully.")
}

func (h *AuthHandler) register(c *gin.Context, allowed entities.Role, message string) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondValidationError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}, allowed)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK(message, gin.H{
		"user": dto.ToUserResponse(user),
	}))
}

// Login autentica o usuário e retorna o token de sessão
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondValidationError(c, err)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Login successful", dto.LoginResponse{
		User:  dto.ToUserResponse(user),
		Token: token,
	}))
}

// VerifyEmail resgata o token do path e marca o email como verificado
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Email verified successfully", nil))
}

// ForgotPassword emite um token de redefinição e envia o link por email
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondValidationError(c, err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK(
		"Password reset link sent to your email. The link will expire in 1 hour.", nil))
}

// ResetPassword resgata o token do path e substitui a senha
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondValidationError(c, err)
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), token, req.NewPassword); err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Password reset successfully", nil))
}
