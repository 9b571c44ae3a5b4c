package middleware

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/domain/errors"
	"github.com/rafabene/blogpro-backend/internal/domain/ports"
	"github.com/rafabene/blogpro-backend/internal/domain/repositories"
	"github.com/rafabene/blogpro-backend/internal/handlers/dto"
)

const (
	// PrincipalContextKey é a chave usada para armazenar o principal
	// autenticado no contexto do Gin
	PrincipalContextKey = "principal"
	// PostContextKey é a chave usada para armazenar o post carregado
	// pelo guard de autoria
	PostContextKey = "post"
)

// AuthMiddleware implementa o guard de autenticação e autorização
type AuthMiddleware struct {
	tokens ports.TokenService
	logger ports.Logger
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(tokens ports.TokenService, logger ports.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Authenticated verifica o token de sessão Bearer e anexa o principal ao
// contexto da requisição
func (m *AuthMiddleware) Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			dto.RespondError(c, m.logger, errors.Unauthorized("Not authenticated"))
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			dto.RespondError(c, m.logger, errors.Unauthorized("Not authenticated"))
			return
		}

		principal, err := m.tokens.VerifySessionToken(token)
		if err != nil {
			dto.RespondError(c, m.logger, err)
			return
		}

		c.Set(PrincipalContextKey, principal)
		c.Next()
	}
}

// RequireRoles falha com Forbidden quando o role do principal não está no
// conjunto permitido. Deve rodar depois de Authenticated e antes de
// qualquer checagem de autoria.
func (m *AuthMiddleware) RequireRoles(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			dto.RespondError(c, m.logger, errors.Unauthorized("Not authenticated"))
			return
		}

		if !principal.Role.In(roles...) {
			dto.RespondError(c, m.logger, errors.Forbidden("This user has insufficient permission"))
			return
		}

		c.Next()
	}
}

// OwnershipMiddleware implementa o guard de autoria de posts
type OwnershipMiddleware struct {
	posts  repositories.PostRepository
	logger ports.Logger
}

// NewOwnershipMiddleware cria um novo OwnershipMiddleware
func NewOwnershipMiddleware(posts repositories.PostRepository, logger ports.Logger) *OwnershipMiddleware {
	return &OwnershipMiddleware{posts: posts, logger: logger}
}

// IsAuthor carrega o post do path e falha com Forbidden quando o
// principal não é o autor, inclusive para admins. O post carregado fica
// disponível no contexto para o handler.
func (m *OwnershipMiddleware) IsAuthor() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			dto.RespondError(c, m.logger, errors.Unauthorized("Not authenticated"))
			return
		}

		id, err := PostIDParam(c)
		if err != nil {
			dto.RespondError(c, m.logger, err)
			return
		}

		post, findErr := m.posts.FindByID(c.Request.Context(), id, false)
		if findErr != nil {
			dto.RespondError(c, m.logger, errors.Internal(findErr))
			return
		}
		if post == nil {
			dto.RespondError(c, m.logger, errors.NotFound("Post"))
			return
		}

		if !post.IsAuthoredBy(principal.ID) {
			dto.RespondError(c, m.logger, errors.Forbidden("Not authorized, not the author"))
			return
		}

		c.Set(PostContextKey, post)
		c.Next()
	}
}

// CurrentPrincipal retorna o principal autenticado do contexto
func CurrentPrincipal(c *gin.Context) (*ports.SessionPrincipal, bool) {
	value, exists := c.Get(PrincipalContextKey)
	if !exists {
		return nil, false
	}

	principal, ok := value.(*ports.SessionPrincipal)
	return principal, ok
}

// LoadedPost retorna o post carregado pelo guard de autoria, se houver
func LoadedPost(c *gin.Context) (*entities.Post, bool) {
	value, exists := c.Get(PostContextKey)
	if !exists {
		return nil, false
	}

	post, ok := value.(*entities.Post)
	return post, ok
}

// PostIDParam extrai o id numérico do post do path
func PostIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.Validation("invalid post id")
	}
	return uint(id), nil
}
