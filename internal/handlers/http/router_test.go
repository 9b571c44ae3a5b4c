package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rafabene/blogpro-backend/internal/domain/ports"
	"github.com/rafabene/blogpro-backend/internal/handlers/dto"
	"github.com/rafabene/blogpro-backend/internal/handlers/middleware"
	"github.com/rafabene/blogpro-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/blogpro-backend/internal/infrastructure/token"
	"github.com/rafabene/blogpro-backend/internal/services"
)

type noopLogger struct{}

func (l noopLogger) Info(msg string, args ...any)  {}
func (l noopLogger) Error(msg string, args ...any) {}
func (l noopLogger) Debug(msg string, args ...any) {}
func (l noopLogger) Warn(msg string, args ...any)  {}
func (l noopLogger) With(args ...any) ports.Logger { return l }

// recordMailer captura os links enviados para dirigir os fluxos de teste
type recordMailer struct {
	mu                sync.Mutex
	verificationLinks []string
	resetLinks        []string
}

func (m *recordMailer) SendVerificationEmail(ctx context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.verificationLinks = append(m.verificationLinks, link)
	return nil
}

func (m *recordMailer) SendPasswordResetEmail(ctx context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLinks = append(m.resetLinks, link)
	return nil
}

func (m *recordMailer) lastVerificationToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.verificationLinks)
	return tokenFromLink(m.verificationLinks[len(m.verificationLinks)-1])
}

func (m *recordMailer) lastResetToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.resetLinks)
	return tokenFromLink(m.resetLinks[len(m.resetLinks)-1])
}

func tokenFromLink(link string) string {
	return link[strings.LastIndex(link, "/")+1:]
}

type serverFixture struct {
	engine *gin.Engine
	mailer *recordMailer
	db     *gorm.DB
}

// envelope espelha o formato uniforme das respostas da API
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()

	gin.SetMode(gin.TestMode)
	require.NoError(t, dto.RegisterCustomValidators())

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	logger := noopLogger{}
	mailer := &recordMailer{}

	tokens, err := token.NewJWTService("test-secret-key")
	require.NoError(t, err)

	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	resetTokenRepo := postgres.NewPasswordResetTokenRepository(db)
	uow := postgres.NewUnitOfWork(db)

	authService := services.NewAuthService(
		userRepo, resetTokenRepo, uow, tokens, mailer, logger,
		"http://localhost:3000", "http://localhost:3000/reset-password",
	)
	userService := services.NewUserService(userRepo, resetTokenRepo, uow, logger)
	postService := services.NewPostService(postRepo, userRepo, logger)

	engine := NewRouter(gin.New(), RouterDeps{
		Auth:      NewAuthHandler(authService, logger),
		Users:     NewUserHandler(userService, logger),
		Posts:     NewPostHandler(postService, logger),
		AuthMW:    middleware.NewAuthMiddleware(tokens, logger),
		Ownership: middleware.NewOwnershipMiddleware(postRepo, logger),
	})

	return &serverFixture{engine: engine, mailer: mailer, db: db}
}

func (f *serverFixture) do(t *testing.T, method, path, sessionToken string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionToken != "" {
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}

	recorder := httptest.NewRecorder()
	f.engine.ServeHTTP(recorder, req)
	return recorder
}

func decodeEnvelope(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, recorder *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	env := decodeEnvelope(t, recorder)
	require.NotEmpty(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, out))
	return env
}

// registerAndLogin executa o fluxo completo de registro self-service e
// retorna o token de sessão
func (f *serverFixture) registerAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()

	recorder := f.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	verifyToken := f.mailer.lastVerificationToken(t)
	recorder = f.do(t, http.MethodPost, "/auth/verify-email/"+verifyToken, "", nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	return f.login(t, email, password)
}

func (f *serverFixture) login(t *testing.T, email, password string) string {
	t.Helper()

	recorder := f.do(t, http.MethodPost, "/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var data dto.LoginResponse
	decodeData(t, recorder, &data)
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestRouter_RegistrationFlow(t *testing.T) {
	f := setupServer(t)

	recorder := f.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"name":     "Maria Silva",
		"email":    "maria@example.com",
		"password": "senha12345",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	env := decodeEnvelope(t, recorder)
	assert.True(t, env.Success)
	assert.Contains(t, env.Message, "verify your account")

	t.Run("login antes da verificação retorna 403", func(t *testing.T) {
		recorder := f.do(t, http.MethodPost, "/auth/login", "", gin.H{
			"email":    "maria@example.com",
			"password": "senha12345",
		})
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("email duplicado retorna 409", func(t *testing.T) {
		recorder := f.do(t, http.MethodPost, "/auth/register", "", gin.H{
			"name":     "Outra Maria",
			"email":    "maria@example.com",
			"password": "senha12345",
		})
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("senha fraca retorna 400", func(t *testing.T) {
		recorder := f.do(t, http.MethodPost, "/auth/register", "", gin.H{
			"name":     "João",
			"email":    "joao@example.com",
			"password": "curta",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("verificação habilita o login e só funciona uma vez", func(t *testing.T) {
		verifyToken := f.mailer.lastVerificationToken(t)

		recorder := f.do(t, http.MethodPost, "/auth/verify-email/"+verifyToken, "", nil)
		assert.Equal(t, http.StatusOK, recorder.Code)

		sessionToken := f.login(t, "maria@example.com", "senha12345")

		profile := f.do(t, http.MethodGet, "/users/me", sessionToken, nil)
		assert.Equal(t, http.StatusOK, profile.Code)
		assert.Contains(t, profile.Body.String(), "maria@example.com")

		recorder = f.do(t, http.MethodPost, "/auth/verify-email/"+verifyToken, "", nil)
		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("perfil sem token retorna 401", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRouter_PasswordResetFlow(t *testing.T) {
	f := setupServer(t)
	f.registerAndLogin(t, "Maria Silva", "maria@example.com", "senha12345")

	recorder := f.do(t, http.MethodPost, "/auth/forgot-password", "", gin.H{
		"email": "maria@example.com",
	})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	resetToken := f.mailer.lastResetToken(t)

	t.Run("email desconhecido retorna 404", func(t *testing.T) {
		recorder := f.do(t, http.MethodPost, "/auth/forgot-password", "", gin.H{
			"email": "ninguem@example.com",
		})
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("senha fraca é rejeitada antes de consumir o token", func(t *testing.T) {
		recorder := f.do(t, http.MethodPost, "/auth/reset-password/"+resetToken, "", gin.H{
			"newPassword": "curta",
		})
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("redefinição troca a senha e consome o token", func(t *testing.T) {
		recorder := f.do(t, http.MethodPost, "/auth/reset-password/"+resetToken, "", gin.H{
			"newPassword": "novasenha123",
		})
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

		login := f.do(t, http.MethodPost, "/auth/login", "", gin.H{
			"email":    "maria@example.com",
			"password": "senha12345",
		})
		assert.Equal(t, http.StatusUnauthorized, login.Code)

		f.login(t, "maria@example.com", "novasenha123")

		// Segundo resgate falha: o registro já foi consumido
		recorder = f.do(t, http.MethodPost, "/auth/reset-password/"+resetToken, "", gin.H{
			"newPassword": "outrasenha123",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRouter_PostLifecycle(t *testing.T) {
	f := setupServer(t)
	alice := f.registerAndLogin(t, "Alice Souza", "alice@example.com", "senha12345")
	bob := f.registerAndLogin(t, "Bob Lima", "bob@example.com", "senha12345")

	t.Run("criação exige autenticação", func(t *testing.T) {
		recorder := f.do(t, http.MethodPost, "/blog/posts", "", gin.H{
			"title": "Post",
			"body":  "Conteúdo",
		})
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	var postID uint
	t.Run("autor cria post com defaults e mídia", func(t *testing.T) {
		recorder := f.do(t, http.MethodPost, "/blog/posts", alice, gin.H{
			"title": "Primeiro post",
			"body":  "Conteúdo",
			"media": gin.H{"type": "image", "url": "https://example.com/capa.png"},
		})
		require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

		var data struct {
			Post dto.PostResponse `json:"post"`
		}
		decodeData(t, recorder, &data)
		assert.Equal(t, "Tech", data.Post.Category)
		assert.Equal(t, "posted", data.Post.Status)
		require.NotNil(t, data.Post.Media)
		assert.Equal(t, "image", data.Post.Media.Type)
		postID = data.Post.ID
		require.NotZero(t, postID)
	})

	path := func(suffix string) string {
		return fmt.Sprintf("/blog/posts/%d%s", postID, suffix)
	}

	t.Run("listagem pública projeta o autor", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/blog/posts", "", nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var data dto.PostListResponse
		decodeData(t, recorder, &data)
		assert.Equal(t, int64(1), data.Count)
		assert.Equal(t, 1, data.TotalPages)
		require.Len(t, data.Posts, 1)
		require.NotNil(t, data.Posts[0].Author)
		assert.Equal(t, "Alice Souza", data.Posts[0].Author.Name)
	})

	t.Run("não-autor não edita nem remove", func(t *testing.T) {
		recorder := f.do(t, http.MethodPut, path(""), bob, gin.H{"title": "Invasão"})
		assert.Equal(t, http.StatusForbidden, recorder.Code)

		recorder = f.do(t, http.MethodDelete, path(""), bob, nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("autor edita parcialmente", func(t *testing.T) {
		recorder := f.do(t, http.MethodPut, path(""), alice, gin.H{"title": "Título novo"})
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

		var data struct {
			Post dto.PostResponse `json:"post"`
		}
		decodeData(t, recorder, &data)
		assert.Equal(t, "Título novo", data.Post.Title)
		assert.Equal(t, "Conteúdo", data.Post.Body)
	})

	t.Run("likes e comentários contam de um em um", func(t *testing.T) {
		for want := 1; want <= 3; want++ {
			recorder := f.do(t, http.MethodPost, path("/like"), bob, nil)
			require.Equal(t, http.StatusOK, recorder.Code)

			var data dto.CounterResponse
			decodeData(t, recorder, &data)
			assert.Equal(t, want, data.Count)
		}

		recorder := f.do(t, http.MethodPost, path("/comment"), alice, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var data dto.CounterResponse
		decodeData(t, recorder, &data)
		assert.Equal(t, 1, data.Count)
	})

	t.Run("estatísticas agregam os posts do principal", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/blog/user/stats", alice, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var stats dto.StatsResponse
		decodeData(t, recorder, &stats)
		assert.Equal(t, int64(1), stats.TotalBlogs)
		assert.Equal(t, int64(3), stats.TotalLikes)
		assert.Equal(t, int64(1), stats.TotalComments)

		recorder = f.do(t, http.MethodGet, "/blog/user/stats", bob, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		decodeData(t, recorder, &stats)
		assert.Equal(t, int64(0), stats.TotalBlogs)
	})

	t.Run("meus posts filtram por autor", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/blog/user/posts", bob, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var data dto.PostListResponse
		decodeData(t, recorder, &data)
		assert.Equal(t, int64(0), data.Count)
		assert.Empty(t, data.Posts)
	})

	t.Run("remoção pelo autor e 404 depois", func(t *testing.T) {
		recorder := f.do(t, http.MethodDelete, path(""), alice, nil)
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

		recorder = f.do(t, http.MethodGet, path(""), "", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)

		recorder = f.do(t, http.MethodDelete, path(""), alice, nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestRouter_AdminEndpoints(t *testing.T) {
	f := setupServer(t)
	user := f.registerAndLogin(t, "Maria Silva", "maria@example.com", "senha12345")

	recorder := f.do(t, http.MethodPost, "/auth/private", "", gin.H{
		"name":     "Admin Root",
		"email":    "admin@example.com",
		"password": "senha12345",
		"role":     "admin",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	t.Run("registro privilegiado exige o role exato", func(t *testing.T) {
		recorder := f.do(t, http.MethodPost, "/auth/private", "", gin.H{
			"name":     "Falso Admin",
			"email":    "falso@example.com",
			"password": "senha12345",
			"role":     "user",
		})
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	// Contas privilegiadas não recebem o email de verificação; o acesso é
	// liberado fora do fluxo self-service
	require.NoError(t, f.db.Model(&postgres.UserModel{}).
		Where("email = ?", "admin@example.com").
		Update("is_verified", true).Error)
	admin := f.login(t, "admin@example.com", "senha12345")

	t.Run("listagem de usuários é só para admin", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/users", user, nil)
		assert.Equal(t, http.StatusForbidden, recorder.Code)

		recorder = f.do(t, http.MethodGet, "/users", admin, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		var data struct {
			Users []dto.UserResponse `json:"users"`
		}
		decodeData(t, recorder, &data)
		assert.Len(t, data.Users, 2)
	})

	t.Run("admin atualiza e remove usuários", func(t *testing.T) {
		var listing struct {
			Users []dto.UserResponse `json:"users"`
		}
		recorder := f.do(t, http.MethodGet, "/users", admin, nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		decodeData(t, recorder, &listing)

		var targetID uint
		for _, u := range listing.Users {
			if u.Email == "maria@example.com" {
				targetID = u.ID
			}
		}
		require.NotZero(t, targetID)

		newName := "Maria Atualizada"
		recorder = f.do(t, http.MethodPut, fmt.Sprintf("/users/%d", targetID), admin, gin.H{
			"name": newName,
		})
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
		assert.Contains(t, recorder.Body.String(), newName)

		recorder = f.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", targetID), admin, nil)
		require.Equal(t, http.StatusOK, recorder.Code)

		recorder = f.do(t, http.MethodDelete, fmt.Sprintf("/users/%d", targetID), admin, nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("busca pública por nome", func(t *testing.T) {
		recorder := f.do(t, http.MethodGet, "/users/search?name=admin", "", nil)
		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Admin Root")
	})
}
