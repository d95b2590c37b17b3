package http

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rafabene/blog-backend/docs"
	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/handlers/dto"
	"github.com/rafabene/blog-backend/internal/handlers/middleware"
)

// RouterConfig reúne os parâmetros de ambiente usados pelo roteador
type RouterConfig struct {
	Env            string
	BaseURL        string
	AllowedOrigins string
	Production     bool
}

// Handlers reúne handlers e middlewares montados em main
type Handlers struct {
	Users      *UserHandler
	Posts      *PostHandler
	Comments   *CommentHandler
	Categories *CategoryHandler
	Uploads    *UploadHandler

	Auth        *middleware.AuthMiddleware
	RateLimiter *middleware.RateLimiter
	I18n        *middleware.I18nMiddleware
}

// NewRouter monta o engine Gin com todas as rotas da API
func NewRouter(cfg RouterConfig, h Handlers, logger ports.Logger) *gin.Engine {
	dto.RegisterValidatorTagNames()

	errorRenderer := NewErrorRenderer(cfg.BaseURL, cfg.Production, logger)

	router := gin.New()
	router.Use(errorRenderer.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`/live$`})))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(h.I18n.DetectLanguage())
	router.Use(errorRenderer.Middleware())

	router.NoRoute(errorRenderer.NoRoute)

	router.GET("/health", Health(cfg.Env))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	protect := h.Auth.Protect()
	limit := h.RateLimiter.Limit()

	api := router.Group("/api")

	users := api.Group("/users")
	{
		users.POST("/register", limit, h.Users.Register)
		users.POST("/verifyEmail", limit, h.Users.VerifyEmail)
		users.POST("/resendVerificationCode", limit, h.Users.ResendVerification)
		users.POST("/login", limit, h.Users.Login)
		users.POST("/forgot-password", limit, h.Users.ForgotPassword)
		users.PUT("/reset-password/:token", limit, h.Users.ResetPassword)
		users.GET("/author/:id", h.Users.GetAuthorProfile)

		users.POST("/logout", protect, h.Users.Logout)
		users.GET("/profile/me", protect, h.Users.GetMyProfile)
		users.PUT("/profile-update", protect, h.Users.UpdateProfile)

		admin := users.Group("", protect, h.Auth.AdminOnly())
		admin.GET("", h.Users.ListUsers)
		admin.PUT("/:id", h.Users.UpdateUser)
		admin.DELETE("/:id", h.Users.DeleteUser)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", h.Posts.ListPublished)
		posts.GET("/latest/:excludeId", h.Posts.Latest)
		posts.GET("/author/:id", h.Posts.ListByAuthor)

		posts.POST("", protect, h.Auth.RequirePermission(entities.PermissionPostWrite), h.Posts.Create)
		posts.GET("/my-posts", protect, h.Posts.ListMine)
		posts.DELETE("/my-posts/:id", protect, h.Posts.DeleteOwned)
		posts.GET("/edit/:id", protect, h.Posts.GetForEdit)
		posts.PUT("/edit/:id", protect, h.Posts.Update)
		posts.PUT("/react/:postId", protect, h.Auth.RequirePermission(entities.PermissionReact), h.Posts.React)

		moderate := h.Auth.RequirePermission(entities.PermissionPostModerate)
		posts.GET("/all-admin", protect, moderate, h.Posts.ListAll)
		posts.PUT("/admin/:id/suspend", protect, moderate, h.Posts.ToggleSuspension)
		posts.DELETE("/admin/:id", protect, moderate, h.Posts.DeleteAsAdmin)

		posts.GET("/:slug", h.Posts.GetBySlug)
	}

	comments := api.Group("/comments")
	{
		moderate := h.Auth.RequirePermission(entities.PermissionCommentModerate)

		comments.POST("", protect, h.Auth.RequirePermission(entities.PermissionCommentWrite), h.Comments.Create)
		comments.GET("/all-admin", protect, moderate, h.Comments.ListAll)
		comments.GET("/:postId", h.Comments.ListForPost)
		comments.GET("/:postId/live", h.Comments.Live)
		comments.PUT("/:id/suspend", protect, moderate, h.Comments.ToggleSuspension)
		comments.DELETE("/:id", protect, moderate, h.Comments.Delete)
	}

	categories := api.Group("/categories")
	{
		manage := h.Auth.RequirePermission(entities.PermissionCategoryManage)

		categories.GET("", h.Categories.List)
		categories.POST("", protect, manage, h.Categories.Create)
		categories.PUT("/:id", protect, manage, h.Categories.Update)
		categories.DELETE("/:id", protect, manage, h.Categories.Delete)
	}

	api.POST("/upload", protect, h.Uploads.UploadImage)

	return router
}
