package services

import (
	"context"
	"sync"
	"time"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/ports"
	"github.com/rafabene/blogpro-backend/internal/domain/repositories"
)

// Fakes em memória dos repositórios, no lugar do banco, para testar a
// lógica de negócio isolada

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*entities.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email.String() == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SearchByName(ctx context.Context, name string) ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matches []*entities.User
	for _, user := range r.users {
		copied := *user
		matches = append(matches, &copied)
	}
	_ = name
	return matches, nil
}

func (r *fakeUserRepo) List(ctx context.Context) ([]*entities.User, error) {
	return r.SearchByName(ctx, "")
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	copied.UpdatedAt = time.Now()
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

type fakeResetTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entities.PasswordResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: make(map[string]*entities.PasswordResetToken)}
}

func (r *fakeResetTokenRepo) Replace(ctx context.Context, token *entities.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, existing := range r.tokens {
		if existing.UserID == token.UserID {
			delete(r.tokens, key)
		}
	}

	copied := *token
	r.tokens[token.Token] = &copied
	return nil
}

func (r *fakeResetTokenRepo) FindByToken(ctx context.Context, token string) (*entities.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	found, ok := r.tokens[token]
	if !ok {
		return nil, nil
	}
	copied := *found
	return &copied, nil
}

func (r *fakeResetTokenRepo) DeleteByToken(ctx context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; !ok {
		return false, nil
	}
	delete(r.tokens, token)
	return true, nil
}

func (r *fakeResetTokenRepo) DeleteForUser(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, token := range r.tokens {
		if token.UserID == userID {
			delete(r.tokens, key)
		}
	}
	return nil
}

type fakePostRepo struct {
	mu     sync.Mutex
	nextID uint
	posts  map[uint]*entities.Post

	// Capturas para asserções
	lastStatsSince *time.Time
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uint]*entities.Post)}
}

func (r *fakePostRepo) Create(ctx context.Context, post *entities.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt

	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id uint, withAuthor bool) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (r *fakePostRepo) List(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []*entities.Post
	for _, post := range r.posts {
		if filters.AuthorID != nil && post.AuthorID != *filters.AuthorID {
			continue
		}
		copied := *post
		all = append(all, &copied)
	}

	count := int64(len(all))
	offset := (filters.Page - 1) * filters.Limit
	if offset >= len(all) {
		return []*entities.Post{}, count, nil
	}
	end := offset + filters.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], count, nil
}

func (r *fakePostRepo) Update(ctx context.Context, post *entities.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

func (r *fakePostRepo) IncrementLikes(ctx context.Context, id uint) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return 0, false, nil
	}
	post.Likes++
	return post.Likes, true, nil
}

func (r *fakePostRepo) IncrementComments(ctx context.Context, id uint) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return 0, false, nil
	}
	post.Comments++
	return post.Comments, true, nil
}

func (r *fakePostRepo) Stats(ctx context.Context, authorID uint, since *time.Time) (repositories.PostStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastStatsSince = since

	var stats repositories.PostStats
	for _, post := range r.posts {
		if post.AuthorID != authorID {
			continue
		}
		if since != nil && post.CreatedAt.Before(*since) {
			continue
		}
		stats.TotalBlogs++
		stats.TotalLikes += int64(post.Likes)
		stats.TotalComments += int64(post.Comments)
	}
	return stats, nil
}

// fakeMailer registra os links enviados em vez de entregar emails
type fakeMailer struct {
	mu                sync.Mutex
	verificationLinks []string
	resetLinks        []string
}

func (m *fakeMailer) SendVerificationEmail(ctx context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verificationLinks = append(m.verificationLinks, link)
	return nil
}

func (m *fakeMailer) SendPasswordResetEmail(ctx context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLinks = append(m.resetLinks, link)
	return nil
}

// fakeUOW executa fn sem transação real
type fakeUOW struct{}

func (fakeUOW) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// noopLogger implementa ports.Logger descartando tudo
type noopLogger struct{}

func (l noopLogger) Info(msg string, args ...any)  {}
func (l noopLogger) Error(msg string, args ...any) {}
func (l noopLogger) Debug(msg string, args ...any) {}
func (l noopLogger) Warn(msg string, args ...any)  {}
func (l noopLogger) With(args ...any) ports.Logger { return l }
