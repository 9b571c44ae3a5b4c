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

// PostHandler lida com requisições HTTP relacionadas a posts
type PostHandler struct {
	postService *services.PostService
	logger      ports.Logger
}

// NewPostHandler cria um novo PostHandler
func NewPostHandler(postService *services.PostService, logger ports.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// CreatePost cria um post com o autor fixado ao principal
func (h *PostHandler) CreatePost(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		dto.RespondError(c, h.logger, errors.Unauthorized("Not authenticated"))
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondValidationError(c, err)
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), principal.ID, services.CreatePostInput{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Status:   req.Status,
		Media:    req.Media.ToMedia(),
	})
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.OK("Post created successfully", gin.H{
		"post": dto.ToPostResponse(post),
	}))
}

// GetPosts lista posts públicos paginados, com o autor projetado
func (h *PostHandler) GetPosts(c *gin.Context) {
	page, limit := paginationParams(c)

	result, err := h.postService.ListPosts(c.Request.Context(), page, limit, nil, true)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Posts retrieved successfully", dto.ToPostListResponse(result)))
}

// GetPostByID busca um post por ID (público)
func (h *PostHandler) GetPostByID(c *gin.Context) {
	id, err := middleware.PostIDParam(c)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	post, err := h.postService.GetPost(c.Request.Context(), id, true)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Post retrieved successfully", gin.H{
		"post": dto.ToPostResponse(post),
	}))
}

// UpdatePost aplica uma atualização parcial; o guard de autoria já rodou
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := middleware.PostIDParam(c)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RespondValidationError(c, err)
		return
	}

	post, updateErr := h.postService.UpdatePost(c.Request.Context(), id, services.UpdatePostInput{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Status:   req.Status,
		Media:    req.Media.ToMedia(),
	})
	if updateErr != nil {
		dto.RespondError(c, h.logger, updateErr)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Post updated successfully", gin.H{
		"post": dto.ToPostResponse(post),
	}))
}

// DeletePost remove um post; o guard de autoria já rodou
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, err := middleware.PostIDParam(c)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), id); err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Post deleted successfully", nil))
}

// LikePost soma 1 ao contador de likes e retorna o novo valor
func (h *PostHandler) LikePost(c *gin.Context) {
	id, err := middleware.PostIDParam(c)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	count, likeErr := h.postService.LikePost(c.Request.Context(), id)
	if likeErr != nil {
		dto.RespondError(c, h.logger, likeErr)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Post liked successfully", dto.CounterResponse{Count: count}))
}

// CommentPost soma 1 ao contador de comentários e retorna o novo valor
func (h *PostHandler) CommentPost(c *gin.Context) {
	id, err := middleware.PostIDParam(c)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	count, commentErr := h.postService.CommentPost(c.Request.Context(), id)
	if commentErr != nil {
		dto.RespondError(c, h.logger, commentErr)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Post commented successfully", dto.CounterResponse{Count: count}))
}

// GetUserStats agrega as estatísticas dos posts do principal no período
func (h *PostHandler) GetUserStats(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		dto.RespondError(c, h.logger, errors.Unauthorized("Not authenticated"))
		return
	}

	period := c.Query("period")

	stats, err := h.postService.UserStats(c.Request.Context(), principal.ID, period)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Stats retrieved successfully", dto.ToStatsResponse(stats)))
}

// GetUserPosts lista os posts do próprio principal, paginados
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		dto.RespondError(c, h.logger, errors.Unauthorized("Not authenticated"))
		return
	}

	page, limit := paginationParams(c)

	result, err := h.postService.ListPosts(c.Request.Context(), page, limit, &principal.ID, false)
	if err != nil {
		dto.RespondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.OK("Posts retrieved successfully", dto.ToPostListResponse(result)))
}

// paginationParams extrai page e limit da query, com defaults 1 e 10
func paginationParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	return page, limit
}
