package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rafabene/blogpro-backend/internal/domain/ports"
	"github.com/rafabene/blogpro-backend/internal/handlers/dto"
	httphandlers "github.com/rafabene/blogpro-backend/internal/handlers/http"
	"github.com/rafabene/blogpro-backend/internal/handlers/middleware"
	"github.com/rafabene/blogpro-backend/internal/infrastructure/config"
	"github.com/rafabene/blogpro-backend/internal/infrastructure/logging"
	"github.com/rafabene/blogpro-backend/internal/infrastructure/mail"
	"github.com/rafabene/blogpro-backend/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/blogpro-backend/internal/infrastructure/token"
	"github.com/rafabene/blogpro-backend/internal/services"
)

func main() {
	// Carregar variáveis do .env, se presente
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting blogpro backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Serviço de tokens: a ausência do segredo já falhou no config.Load
	tokenService, err := token.NewJWTService(cfg.JWT.Secret)
	if err != nil {
		logger.Error("failed to initialize token service", "error", err)
		log.Fatal(err)
	}

	// Mailer: SMTP quando configurado, log-only em desenvolvimento
	var mailer ports.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(&cfg.SMTP, logger)
	} else {
		logger.Warn("SMTP not configured, emails will only be logged")
		mailer = mail.NewLogMailer(logger)
	}

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	resetTokenRepo := postgres.NewPasswordResetTokenRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	authService := services.NewAuthService(
		userRepo, resetTokenRepo, uow, tokenService, mailer, logger,
		cfg.Server.FrontendURL, cfg.Server.ResetPasswordURL,
	)
	userService := services.NewUserService(userRepo, resetTokenRepo, uow, logger)
	postService := services.NewPostService(postRepo, userRepo, logger)

	// Inicializar handlers e middlewares
	authHandler := httphandlers.NewAuthHandler(authService, logger)
	userHandler := httphandlers.NewUserHandler(userService, logger)
	postHandler := httphandlers.NewPostHandler(postService, logger)
	authMW := middleware.NewAuthMiddleware(tokenService, logger)
	ownershipMW := middleware.NewOwnershipMiddleware(postRepo, logger)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := dto.RegisterCustomValidators(); err != nil {
		logger.Error("failed to register validators", "error", err)
		log.Fatal(err)
	}

	engine := gin.Default()

	// Middleware CORS
	corsConfig := cors.DefaultConfig()
	origins := strings.Split(cfg.CORS.AllowedOrigins, ",")
	if len(origins) == 1 && strings.TrimSpace(origins[0]) == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	router := httphandlers.NewRouter(engine, httphandlers.RouterDeps{
		Auth:      authHandler,
		Users:     userHandler,
		Posts:     postHandler,
		AuthMW:    authMW,
		Ownership: ownershipMW,
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
