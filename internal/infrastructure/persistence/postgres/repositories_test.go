package postgres

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/valueobjects"
)

// setupTestDB cria um banco sqlite isolado por teste, com o mesmo schema
// usado em produção
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, emailAddr string) *entities.User {
	t.Helper()

	email, err := valueobjects.NewEmail(emailAddr)
	require.NoError(t, err)

	user := &entities.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Role:         entities.RoleUser,
		IsActive:     true,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	require.NotZero(t, user.ID)

	return user
}

func createTestPost(t *testing.T, db *gorm.DB, authorID uint, title string) *entities.Post {
	t.Helper()

	post := &entities.Post{
		Title:    title,
		Body:     "body",
		Category: entities.CategoryTech,
		Status:   entities.StatusPosted,
		AuthorID: authorID,
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), post))
	require.NotZero(t, post.ID)

	return post
}

// setPostCreatedAt ajusta o created_at de um post para montar cenários
// de janela de tempo
func setPostCreatedAt(t *testing.T, db *gorm.DB, postID uint, createdAt int64) {
	t.Helper()

	err := db.Model(&PostModel{}).
		Where("id = ?", postID).
		UpdateColumn("created_at", createdAt).Error
	require.NoError(t, err)
}
