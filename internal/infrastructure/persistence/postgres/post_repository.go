package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/repositories"
)

// PostRepository implementa repositories.PostRepository
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository cria um novo PostRepository
func NewPostRepository(db *gorm.DB) repositories.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	model := toPostModel(post)

	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return err
	}

	post.ID = model.ID
	post.CreatedAt = time.Unix(model.CreatedAt, 0)
	post.UpdatedAt = time.Unix(model.UpdatedAt, 0)
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint, withAuthor bool) (*entities.Post, error) {
	var model PostModel

	db := dbFromContext(ctx, r.db)
	query := db.Where("id = ?", id)
	if withAuthor {
		query = query.Preload("Author")
	}

	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toPostEntity(&model)
}

func (r *PostRepository) List(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, int64, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Model(&PostModel{})

	if filters.AuthorID != nil {
		query = query.Where("author_id = ?", *filters.AuthorID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	page := filters.Page
	if page < 1 {
		page = 1
	}
	limit := filters.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	if filters.WithAuthor {
		query = query.Preload("Author")
	}

	var models []*PostModel
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	posts, err := toPostEntities(models)
	if err != nil {
		return nil, 0, err
	}

	return posts, count, nil
}

func (r *PostRepository) Update(ctx context.Context, post *entities.Post) error {
	model := toPostModel(post)

	db := dbFromContext(ctx, r.db)
	return db.Save(model).Error
}

func (r *PostRepository) Delete(ctx context.Context, id uint) (bool, error) {
	db := dbFromContext(ctx, r.db)
	result := db.Where("id = ?", id).Delete(&PostModel{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PostRepository) IncrementLikes(ctx context.Context, id uint) (int, bool, error) {
	return r.incrementCounter(ctx, id, "likes")
}

func (r *PostRepository) IncrementComments(ctx context.Context, id uint) (int, bool, error) {
	return r.incrementCounter(ctx, id, "comments")
}

// incrementCounter soma 1 à coluna em uma única operação condicional;
// a atomicidade do incremento fica a cargo do banco
func (r *PostRepository) incrementCounter(ctx context.Context, id uint, column string) (int, bool, error) {
	db := dbFromContext(ctx, r.db)

	result := db.Model(&PostModel{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return 0, false, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, false, nil
	}

	var count int
	err := db.Model(&PostModel{}).
		Select(column).
		Where("id = ?", id).
		Scan(&count).Error
	if err != nil {
		return 0, false, err
	}

	return count, true, nil
}

func (r *PostRepository) Stats(ctx context.Context, authorID uint, since *time.Time) (repositories.PostStats, error) {
	db := dbFromContext(ctx, r.db)

	query := db.Model(&PostModel{}).Where("author_id = ?", authorID)
	if since != nil {
		query = query.Where("created_at >= ?", since.Unix())
	}

	var stats repositories.PostStats
	err := query.
		Select("COUNT(*) AS total_blogs, COALESCE(SUM(likes), 0) AS total_likes, COALESCE(SUM(comments), 0) AS total_comments").
		Scan(&stats).Error
	if err != nil {
		return repositories.PostStats{}, err
	}

	return stats, nil
}

// Conversores
func toPostModel(post *entities.Post) *PostModel {
	model := &PostModel{
		ID:       post.ID,
		Title:    post.Title,
		Body:     post.Body,
		Category: string(post.Category),
		Status:   string(post.Status),
		AuthorID: post.AuthorID,
		Likes:    post.Likes,
		Comments: post.Comments,
	}
	if post.Media != nil {
		mediaType := string(post.Media.Type)
		mediaURL := post.Media.URL
		model.MediaType = &mediaType
		model.MediaURL = &mediaURL
	}
	if !post.CreatedAt.IsZero() {
		model.CreatedAt = post.CreatedAt.Unix()
	}
	if !post.UpdatedAt.IsZero() {
		model.UpdatedAt = post.UpdatedAt.Unix()
	}
	return model
}

func toPostEntity(model *PostModel) (*entities.Post, error) {
	post := &entities.Post{
		ID:        model.ID,
		Title:     model.Title,
		Body:      model.Body,
		Category:  entities.Category(model.Category),
		Status:    entities.PostStatus(model.Status),
		AuthorID:  model.AuthorID,
		Likes:     model.Likes,
		Comments:  model.Comments,
		CreatedAt: time.Unix(model.CreatedAt, 0),
		UpdatedAt: time.Unix(model.UpdatedAt, 0),
	}

	if model.MediaType != nil && model.MediaURL != nil {
		post.Media = &entities.Media{
			Type: entities.MediaType(*model.MediaType),
			URL:  *model.MediaURL,
		}
	}

	if model.Author != nil {
		author, err := toUserEntity(model.Author)
		if err != nil {
			return nil, err
		}
		post.Author = author
	}

	return post, nil
}

func toPostEntities(models []*PostModel) ([]*entities.Post, error) {
	posts := make([]*entities.Post, 0, len(models))

	for _, model := range models {
		post, err := toPostEntity(model)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}
