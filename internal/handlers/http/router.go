package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blogpro-backend/internal/domain/entities"
	"github.com/rafabene/blogpro-backend/internal/handlers/middleware"
)

// RouterDeps agrupa as dependências de construção do router
type RouterDeps struct {
	Auth      *AuthHandler
	Users     *UserHandler
	Posts     *PostHandler
	AuthMW    *middleware.AuthMiddleware
	Ownership *middleware.OwnershipMiddleware
}

// NewRouter monta o router com todas as rotas da API.
// Os guards compõem na ordem: autenticação, role, autoria.
func NewRouter(engine *gin.Engine, deps RouterDeps) *gin.Engine {
	engine.Use(middleware.RequestID())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := engine.Group("/auth")
	{
		auth.POST("/register", deps.Auth.Register)
		auth.POST("/private", deps.Auth.PrivateRegister)
		auth.POST("/sprivate", deps.Auth.SuperRegister)
		auth.POST("/login", deps.Auth.Login)
		auth.POST("/verify-email/:token", deps.Auth.VerifyEmail)
		auth.POST("/forgot-password", deps.Auth.ForgotPassword)
		auth.POST("/reset-password/:token", deps.Auth.ResetPassword)
	}

	authenticated := deps.AuthMW.Authenticated()
	isAuthor := deps.Ownership.IsAuthor()
	adminOnly := deps.AuthMW.RequireRoles(entities.RoleAdmin)

	blog := engine.Group("/blog")
	{
		blog.GET("/posts", deps.Posts.GetPosts)
		blog.POST("/posts", authenticated, deps.Posts.CreatePost)
		blog.GET("/posts/:id", deps.Posts.GetPostByID)
		blog.PUT("/posts/:id", authenticated, isAuthor, deps.Posts.UpdatePost)
		blog.DELETE("/posts/:id", authenticated, isAuthor, deps.Posts.DeletePost)
		blog.POST("/posts/:id/like", authenticated, deps.Posts.LikePost)
		blog.POST("/posts/:id/comment", authenticated, deps.Posts.CommentPost)
		blog.GET("/user/stats", authenticated, deps.Posts.GetUserStats)
		blog.GET("/user/posts", authenticated, deps.Posts.GetUserPosts)
	}

	users := engine.Group("/users")
	{
		users.GET("/search", deps.Users.Search)
		users.GET("/me", authenticated, deps.Users.GetProfile)
		users.PUT("/me", authenticated, deps.Users.UpdateProfile)
		users.GET("/:id", authenticated, deps.Users.GetByID)
		users.GET("", authenticated, adminOnly, deps.Users.ListUsers)
		users.PUT("/:id", authenticated, adminOnly, deps.Users.UpdateUser)
		users.DELETE("/:id", authenticated, adminOnly, deps.Users.DeleteUser)
	}

	return engine
}
