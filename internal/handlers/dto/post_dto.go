package dto

import (
	"time"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/repositories"
	"github.com/rafabene/blogpro-backend/internal/services"
)

// MediaPayload representa a mídia opcional de um post
type MediaPayload struct {
	Type string `json:"type" binding:"required,oneof=image video document"`
	URL  string `json:"url" binding:"required,url"`
}

// CreatePostRequest representa a requisição de criação de post
type CreatePostRequest struct {
	Title    string        `json:"title" binding:"required,max=255"`
	Body     string        `json:"body" binding:"required"`
	Category string        `json:"category" binding:"omitempty,oneof=Tech Development Trends"`
	Status   string        `json:"status" binding:"omitempty,oneof=posted draft"`
	Media    *MediaPayload `json:"media" binding:"omitempty"`
}

// UpdatePostRequest representa a atualização parcial de um post
type UpdatePostRequest struct {
	Title    *string       `json:"title" binding:"omitempty,max=255"`
	Body     *string       `json:"body" binding:"omitempty"`
	Category *string       `json:"category" binding:"omitempty,oneof=Tech Development Trends"`
	Status   *string       `json:"status" binding:"omitempty,oneof=posted draft"`
	Media    *MediaPayload `json:"media" binding:"omitempty"`
}

// ToMedia converte o payload de mídia para a entidade
func (m *MediaPayload) ToMedia() *entities.Media {
	if m == nil {
		return nil
	}
	return &entities.Media{
		Type: entities.MediaType(m.Type),
		URL:  m.URL,
	}
}

// PostAuthorResponse é a projeção segura do autor de um post
type PostAuthorResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MediaResponse representa a mídia de um post na resposta
type MediaResponse struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// PostResponse representa a resposta de um post
type PostResponse struct {
	ID        uint                `json:"id"`
	Title     string              `json:"title"`
	Body      string              `json:"body"`
	Category  string              `json:"category"`
	Status    string              `json:"status"`
	Media     *MediaResponse      `json:"media,omitempty"`
	Author    *PostAuthorResponse `json:"author,omitempty"`
	Likes     int                 `json:"likes"`
	Comments  int                 `json:"comments"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// PostListResponse representa uma página de posts
type PostListResponse struct {
	Posts      []PostResponse `json:"posts"`
	Count      int64          `json:"count"`
	TotalPages int            `json:"totalPages"`
}

// StatsResponse representa as estatísticas agregadas de um autor
type StatsResponse struct {
	TotalBlogs    int64 `json:"totalBlogs"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
}

// CounterResponse representa o novo valor de um contador de post
type CounterResponse struct {
	Count int `json:"count"`
}

// ToPostResponse converte uma entidade Post para PostResponse
func ToPostResponse(post *entities.Post) PostResponse {
	response := PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		Category:  string(post.Category),
		Status:    string(post.Status),
		Likes:     post.Likes,
		Comments:  post.Comments,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	if post.Media != nil {
		response.Media = &MediaResponse{
			Type: string(post.Media.Type),
			URL:  post.Media.URL,
		}
	}

	if post.Author != nil {
		response.Author = &PostAuthorResponse{
			ID:    post.Author.ID,
			Name:  post.Author.Name,
			Email: post.Author.Email.String(),
		}
	}

	return response
}

// ToPostListResponse converte uma página de posts para a resposta
func ToPostListResponse(page *services.PostPage) PostListResponse {
	posts := make([]PostResponse, len(page.Posts))
	for i, post := range page.Posts {
		posts[i] = ToPostResponse(post)
	}
	return PostListResponse{
		Posts:      posts,
		Count:      page.Count,
		TotalPages: page.TotalPages,
	}
}

// ToStatsResponse converte as estatísticas agregadas para a resposta
func ToStatsResponse(stats repositories.PostStats) StatsResponse {
	return StatsResponse{
		TotalBlogs:    stats.TotalBlogs,
		TotalLikes:    stats.TotalLikes,
		TotalComments: stats.TotalComments,
	}
}
