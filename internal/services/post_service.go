package services

import (
	"context"
	"time"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/errors"
	"github.com/rafabene/blogpro-backend/internal/domain/ports"
	"github.com/rafabene/blogpro-backend/internal/domain/repositories"
)

// Períodos aceitos pelo filtro de estatísticas
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// PostService contém a lógica de negócio para posts
type PostService struct {
	posts  repositories.PostRepository
	users  repositories.UserRepository
	logger ports.Logger
	now    func() time.Time
}

// NewPostService cria um novo PostService
func NewPostService(
	posts repositories.PostRepository,
	users repositories.UserRepository,
	logger ports.Logger,
) *PostService {
	return &PostService{
		posts:  posts,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// CreatePostInput representa os dados para criar um post
type CreatePostInput struct {
	Title    string
	Body     string
	Category string
	Status   string
	Media    *entities.Media
}

// CreatePost cria um post com o autor fixado ao principal autenticado;
// o autor informado pelo cliente nunca é aceito
func (s *PostService) CreatePost(ctx context.Context, authorID uint, input CreatePostInput) (*entities.Post, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if author == nil {
		// O autor sumiu entre a autenticação e a escrita
		return nil, errors.NotFound("Author")
	}

	category := entities.Category(input.Category)
	if input.Category == "" {
		category = entities.CategoryTech
	}
	status := entities.PostStatus(input.Status)
	if input.Status == "" {
		status = entities.StatusPosted
	}

	post := &entities.Post{
		Title:    input.Title,
		Body:     input.Body,
		Category: category,
		Status:   status,
		Media:    input.Media,
		AuthorID: author.ID,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("post created", "post_id", post.ID, "author_id", author.ID)

	post.Author = author
	return post, nil
}

// PostPage é uma página de posts com os metadados de paginação
type PostPage struct {
	Posts      []*entities.Post
	Count      int64
	TotalPages int
}

// ListPosts lista posts paginados; página além do fim retorna uma
// página vazia, não um erro
func (s *PostService) ListPosts(ctx context.Context, page, limit int, authorID *uint, withAuthor bool) (*PostPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	posts, count, err := s.posts.List(ctx, repositories.PostFilters{
		AuthorID:   authorID,
		Page:       page,
		Limit:      limit,
		WithAuthor: withAuthor,
	})
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &PostPage{
		Posts:      posts,
		Count:      count,
		TotalPages: totalPages(count, limit),
	}, nil
}

// totalPages calcula ceil(count/limit)
func totalPages(count int64, limit int) int {
	return int((count + int64(limit) - 1) / int64(limit))
}

// GetPost busca um post por ID, com o autor carregado quando pedido
func (s *PostService) GetPost(ctx context.Context, id uint, withAuthor bool) (*entities.Post, error) {
	post, err := s.posts.FindByID(ctx, id, withAuthor)
	if err != nil {
		return nil, errors.Internal(err)
	}
	if post == nil {
		return nil, errors.NotFound("Post")
	}
	return post, nil
}

// UpdatePostInput representa a atualização parcial de um post;
// apenas campos não-nil são alterados
type UpdatePostInput struct {
	Title    *string
	Body     *string
	Category *string
	Status   *string
	Media    *entities.Media
}

// UpdatePost aplica uma atualização parcial. A checagem de autoria
// acontece no guard de autorização, antes deste método.
func (s *PostService) UpdatePost(ctx context.Context, id uint, input UpdatePostInput) (*entities.Post, error) {
	post, err := s.GetPost(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Body != nil {
		post.Body = *input.Body
	}
	if input.Category != nil {
		post.Category = entities.Category(*input.Category)
	}
	if input.Status != nil {
		post.Status = entities.PostStatus(*input.Status)
	}
	if input.Media != nil {
		post.Media = input.Media
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, errors.Internal(err)
	}

	s.logger.Info("post updated", "post_id", post.ID)
	return post, nil
}

// DeletePost remove um post em uma única operação condicional;
// zero linhas afetadas vira NotFound
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	deleted, err := s.posts.Delete(ctx, id)
	if err != nil {
		return errors.Internal(err)
	}
	if !deleted {
		return errors.NotFound("Post")
	}

	s.logger.Info("post deleted", "post_id", id)
	return nil
}

// LikePost soma exatamente 1 ao contador de likes e retorna o novo valor.
// Não há deduplicação: chamadas repetidas do mesmo ator contam de novo.
func (s *PostService) LikePost(ctx context.Context, id uint) (int, error) {
	count, found, err := s.posts.IncrementLikes(ctx, id)
	if err != nil {
		return 0, errors.Internal(err)
	}
	if !found {
		return 0, errors.NotFound("Post")
	}
	return count, nil
}

// CommentPost soma exatamente 1 ao contador de comentários e retorna o
// novo valor
func (s *PostService) CommentPost(ctx context.Context, id uint) (int, error) {
	count, found, err := s.posts.IncrementComments(ctx, id)
	if err != nil {
		return 0, errors.Internal(err)
	}
	if !found {
		return 0, errors.NotFound("Post")
	}
	return count, nil
}

// UserStats agrega os posts do autor dentro do período pedido.
// Período ausente ou desconhecido agrega todos os posts.
func (s *PostService) UserStats(ctx context.Context, authorID uint, period string) (repositories.PostStats, error) {
	since := periodStart(period, s.now())

	stats, err := s.posts.Stats(ctx, authorID, since)
	if err != nil {
		return repositories.PostStats{}, errors.Internal(err)
	}
	return stats, nil
}

// periodStart calcula o início da janela de tempo de um período, no fuso
// local do servidor; retorna nil para todos-os-períodos
func periodStart(period string, now time.Time) *time.Time {
	var start time.Time

	switch period {
	case PeriodDaily:
		// Meia-noite local de hoje
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeekly:
		// Domingo mais recente, meia-noite
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		start = midnight.AddDate(0, 0, -int(now.Weekday()))
	case PeriodMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYearly:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}

	return &start
}
