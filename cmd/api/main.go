package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
	httphandlers "github.com/rafabene/blog-backend/internal/handlers/http"
	"github.com/rafabene/blog-backend/internal/handlers/middleware"
	"github.com/rafabene/blog-backend/internal/infrastructure/auth"
	"github.com/rafabene/blog-backend/internal/infrastructure/cache"
	"github.com/rafabene/blog-backend/internal/infrastructure/config"
	"github.com/rafabene/blog-backend/internal/infrastructure/i18n"
	"github.com/rafabene/blog-backend/internal/infrastructure/jobs"
	"github.com/rafabene/blog-backend/internal/infrastructure/logging"
	"github.com/rafabene/blog-backend/internal/infrastructure/mail"
	"github.com/rafabene/blog-backend/internal/infrastructure/persistence/mongodb"
	"github.com/rafabene/blog-backend/internal/infrastructure/persistence/relational"
	"github.com/rafabene/blog-backend/internal/infrastructure/realtime"
	"github.com/rafabene/blog-backend/internal/infrastructure/storage"
	"github.com/rafabene/blog-backend/internal/services"
)

//	@title						Blog API
//	@version					1.0
//	@description				API REST do blog: autenticação, posts, comentários, categorias e uploads.
//	@BasePath					/api
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer <token>

// store agrupa os repositórios do driver escolhido
type store struct {
	users      repositories.UserRepository
	posts      repositories.PostRepository
	comments   repositories.CommentRepository
	categories repositories.CategoryRepository
	uow        ports.UnitOfWork
	close      func()
}

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting blog backend",
		"env", cfg.Env,
		"version", "dev",
	)

	ctx := context.Background()

	// Conectar ao banco de dados
	db, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	defer db.close()

	// Inicializar i18n
	i18nService, err := i18n.NewDefaultService()
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Revogação de tokens e rate limit
	var revocations ports.RevocationList
	var counter ports.RateCounter
	if cfg.Redis.URL != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			log.Fatal(err)
		}
		defer rdb.Close()

		redisStore := cache.NewRedisStore(rdb)
		revocations, counter = redisStore, redisStore
		logger.Info("using redis for revocations and rate limits")
	} else {
		memoryStore := cache.NewMemoryStore(time.Minute)
		revocations, counter = memoryStore, memoryStore
		logger.Warn("REDIS_URL not set, using in-memory store")
	}

	// Armazenamento de imagens
	imageStore, err := storage.NewMinioStore(ctx, &cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize image storage", "error", err)
		log.Fatal(err)
	}

	hub := realtime.NewHub(logger)

	// Inicializar services
	tokens := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry)
	hasher := auth.NewBcryptHasher(0)
	mailer := mail.NewFromConfig(cfg, logger)

	uploadService := services.NewUploadService(imageStore, cfg.Storage.MaxUploadMB, logger)
	authService := services.NewAuthService(db.users, tokens, hasher, auth.NewRandomSecrets(), revocations, mailer, cfg.Server.ClientURL, logger)
	userService := services.NewUserService(db.users, db.posts, uploadService, logger)
	postService := services.NewPostService(db.posts, db.comments, db.categories, db.users, db.uow, logger)
	commentService := services.NewCommentService(db.comments, db.posts, db.users, hub, logger)
	categoryService := services.NewCategoryService(db.categories, db.posts, db.uow, logger)

	// Jobs agendados
	scheduler := jobs.NewScheduler(logger)
	if err := scheduler.Add(cfg.Jobs.CleanupSchedule, jobs.NewTokenCleanupJob(db.users, logger)); err != nil {
		logger.Error("invalid cleanup schedule", "schedule", cfg.Jobs.CleanupSchedule, "error", err)
		log.Fatal(err)
	}
	scheduler.Start()

	// Setup Gin
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(
		httphandlers.RouterConfig{
			Env:            cfg.Env,
			BaseURL:        cfg.Server.BaseURL,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Production:     cfg.IsProduction(),
		},
		httphandlers.Handlers{
			Users:       httphandlers.NewUserHandler(authService, userService),
			Posts:       httphandlers.NewPostHandler(postService),
			Comments:    httphandlers.NewCommentHandler(commentService, hub),
			Categories:  httphandlers.NewCategoryHandler(categoryService),
			Uploads:     httphandlers.NewUploadHandler(uploadService),
			Auth:        middleware.NewAuthMiddleware(authService),
			RateLimiter: middleware.NewRateLimiter(counter, cfg.RateLimit.RequestsPerMinute, logger),
			I18n:        middleware.NewI18nMiddleware(i18nService),
		},
		logger,
	)

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	scheduler.Stop()
	authService.Wait()

	logger.Info("server exited")
}

// openStore conecta ao banco indicado por DB_DRIVER
func openStore(ctx context.Context, cfg *config.Config, logger ports.Logger) (*store, error) {
	if cfg.Database.Driver == config.DriverMongo {
		client, db, err := mongodb.NewDatabaseConnection(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}

		return &store{
			users:      mongodb.NewUserRepository(db),
			posts:      mongodb.NewPostRepository(db),
			comments:   mongodb.NewCommentRepository(db),
			categories: mongodb.NewCategoryRepository(db),
			uow:        mongodb.NewUnitOfWork(client, cfg.Database.MongoTransactions),
			close: func() {
				_ = client.Disconnect(context.Background())
			},
		}, nil
	}

	db, err := relational.NewDatabaseConnection(&cfg.Database, logger, !cfg.IsProduction())
	if err != nil {
		return nil, err
	}

	return &store{
		users:      relational.NewUserRepository(db),
		posts:      relational.NewPostRepository(db),
		comments:   relational.NewCommentRepository(db),
		categories: relational.NewCategoryRepository(db),
		uow:        relational.NewUnitOfWork(db),
		close: func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		},
	}, nil
}
