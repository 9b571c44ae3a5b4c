package repositories

import (
	"context"
	"time"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
)

// PostFilters contém filtros e paginação para listagem de posts
type PostFilters struct {
	AuthorID   *uint
	Page       int // Página (começa em 1)
	Limit      int // Itens por página (default: 10, max: 100)
	WithAuthor bool
}

// PostStats agrega os totais dos posts de um autor
type PostStats struct {
	TotalBlogs    int64
	TotalLikes    int64
	TotalComments int64
}

// PostRepository define a interface para persistência de posts.
// FindByID retorna (nil, nil) quando o post não existe.
type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	FindByID(ctx context.Context, id uint, withAuthor bool) (*entities.Post, error)
	// List retorna a página filtrada e a contagem total de registros
	List(ctx context.Context, filters PostFilters) ([]*entities.Post, int64, error)
	Update(ctx context.Context, post *entities.Post) error
	// Delete remove o post e retorna se alguma linha foi afetada
	Delete(ctx context.Context, id uint) (bool, error)
	// IncrementLikes soma 1 ao contador em uma única operação condicional
	// e retorna o novo valor; found é false quando o post não existe
	IncrementLikes(ctx context.Context, id uint) (count int, found bool, err error)
	IncrementComments(ctx context.Context, id uint) (count int, found bool, err error)
	// Stats agrega os posts do autor criados a partir de since
	// (since nil = todos os períodos)
	Stats(ctx context.Context, authorID uint, since *time.Time) (PostStats, error)
}
