package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"resumeforge/internal/api/middleware"
	"resumeforge/internal/auth"
	"resumeforge/internal/config"
	"resumeforge/internal/document"
	"resumeforge/internal/profile"
	"resumeforge/internal/render"
	"resumeforge/internal/storage"
)

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	asynqClient *asynq.Client,
	authService *auth.AuthService,
	redisClient *redis.Client,
	logger *slog.Logger,
	storageClient *storage.Client,
) {
	profileStore := profile.NewStore(db)
	documentStore := document.NewStore(db)
	renderService := render.NewService(profileStore)

	authHandler := NewAuthHandler(db, authService, redisClient, logger,
		cfg.Auth.LoginRateLimitPerHour, cfg.Auth.LoginLockThreshold, cfg.Auth.LoginLockTTL, cfg.Auth.CookieDomain)
	accountHandler := NewAccountHandler(db, authService)
	profileHandler := NewProfileHandler(profileStore)
	documentHandler := NewDocumentHandler(documentStore, asynqClient, storageClient)
	renderHandler := NewRenderHandler(renderService)
	templateHandler := NewTemplateHandler()
	wsHandler := NewWsHandler(redisClient, authService, logger, cfg.API.AllowedWSOrigins())
	authMiddleware := middleware.AuthMiddleware(authService)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		accountGroup := v1.Group("/account")
		accountGroup.Use(authMiddleware)
		{
			accountGroup.GET("", accountHandler.GetAccount)
			accountGroup.PUT("", accountHandler.UpdateAccount)
		}

		profileGroup := v1.Group("/profile")
		profileGroup.Use(authMiddleware)
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.SaveProfile)
		}

		documentGroup := v1.Group("/documents")
		documentGroup.Use(authMiddleware)
		{
			documentGroup.POST("", documentHandler.CreateDocument)
			documentGroup.GET("", documentHandler.ListDocuments)
			documentGroup.GET("/:id", documentHandler.GetDocument)
			documentGroup.PUT("/:id", documentHandler.UpdateDocument)
			documentGroup.DELETE("/:id", documentHandler.DeleteDocument)
			documentGroup.POST("/:id/export", documentHandler.ExportDocument)
			documentGroup.GET("/:id/download-link", documentHandler.GetDownloadLink)
		}

		v1.GET("/templates", authMiddleware, templateHandler.ListTemplates)
		v1.GET("/render/:template", authMiddleware, renderHandler.RenderTemplate)
	}
}
