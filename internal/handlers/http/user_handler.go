package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blogpro-backend/internal/domain/errors"
	"github.com/rafabene/blogpro-backend/internal/domain/ports"
	"github.com/rafabene/blogpro-backend/internal/handlers/dto"
	"github.com/rafabene/blogpro-backend/internal/handlers/middleware"
	"github.com/rafabene/blogpro-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Search busca usuários por trecho do nome (rota pública)
func (h *UserHandler) Search(c *gin.Context) {
	name := c.Query("name")

	users, err := h.userService.Search(c.Request.Context(), name)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Search completed successfully", gin.H{
		"users": dto.ToUserResponses(users),
		"count": len(users),
	}))
}

// GetProfile retorna o perfil do próprio principal
func (h *UserHandler) GetProfile(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		dto.RespondError(c, h.logger, errors.Unauthorized("User not authenticated"))
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), principal.ID)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Profile retrieved successfully", gin.H{
		"user": dto.ToUserResponse(user),
	}))
}

// UpdateProfile atualiza nome e imagem de perfil do próprio principal
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		dto.RespondError(c, h.logger, errors.Unauthorized("User not authenticated"))
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondValidationError(c, err)
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), principal.ID, services.UpdateProfileInput{
		Name:         req.Name,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Profile updated", gin.H{
		"user": dto.ToUserResponse(user),
	}))
}

// GetByID busca um usuário por ID (qualquer usuário autenticado)
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := userIDParam(c)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	user, getErr := h.userService.GetUser(c.Request.Context(), id)
	if getErr != nil {
		dto.RespondError(c, h.logger, getErr)
		return
	}

	c.JSON(http.StatusOK, dto.OK("User retrieved successfully", gin.H{
		"user": dto.ToUserResponse(user),
	}))
}

// ListUsers lista todos os usuários (admin)
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Users retrieved successfully", gin.H{
		"users": dto.ToUserResponses(users),
	}))
}

// UpdateUser atualiza um usuário em nome de um admin
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := userIDParam(c)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	var req dto.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondValidationError(c, err)
		return
	}

	user, updateErr := h.userService.AdminUpdate(c.Request.Context(), id, services.AdminUpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if updateErr != nil {
		dto.RespondError(c, h.logger, updateErr)
		return
	}

	c.JSON(http.StatusOK, dto.OK("User updated successfully", gin.H{
		"user": dto.ToUserResponse(user),
	}))
}

// DeleteUser remove um usuário (admin)
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := userIDParam(c)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("User deleted successfully", nil))
}

// userIDParam extrai o id numérico do usuário do path
func userIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.Validation("invalid user id")
	}
	return uint(id), nil
}
