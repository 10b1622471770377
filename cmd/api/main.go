package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"medcast/internal/category"
	"medcast/internal/config"
	"medcast/internal/database"
	"medcast/internal/events"
	"medcast/internal/handlers"
	"medcast/internal/logger"
	"medcast/internal/middleware"
	"medcast/internal/services"
	"medcast/internal/validator"

	_ "medcast/internal/docs" // Import swagger docs
)

// @title           MedCast API
// @version         1.0
// @description     MedCast is a medical-audio publishing platform. This API manages the category hierarchy, audio catalog metadata, and admin accounts.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize the change bus and category engine
	db := dbManager.DB()
	bus := events.NewBus()
	store := services.NewCategoryStore(db, bus)
	coordinator := category.NewCoordinator(store, bus,
		category.WithRefreshDebounce(appConfig.RefreshDebounce))

	ctx := context.Background()
	if err := coordinator.Refresh(ctx); err != nil {
		// The coordinator falls back to the seed hierarchy; keep serving.
		log.Warnw("initial category load failed", "error", err)
	}
	coordinator.Start(ctx)

	// Initialize services
	userService := services.NewUserService(db)
	audioService := services.NewAudioService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(coordinator, auditService)
	audioHandler := handlers.NewAudioHandler(audioService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"degraded": coordinator.Degraded(),
		})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Listener-facing routes need no authentication
	public := v1.Group("/public")
	public.GET("/categories/tree", categoryHandler.GetPublicTree)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Admin profile
	protected.GET("/profile", authHandler.GetProfile)

	// Category routes
	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("/tree", categoryHandler.GetTree)
	categories.GET("/stats", categoryHandler.GetStats)
	categories.GET("/options", categoryHandler.GetOptions)
	categories.GET("/path", categoryHandler.GetPath)
	categories.POST("/delete-impact", categoryHandler.PreviewDelete)
	categories.POST("/delete", categoryHandler.DeleteCategories)
	categories.PATCH("/status", categoryHandler.BatchUpdateStatus)
	categories.PUT("/reorder", categoryHandler.ReorderCategories)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.GET("/:id/subcategories", categoryHandler.GetSubcategoryOptions)
	categories.GET("/:id/audios", audioHandler.GetCategoryAudios)

	// Audio routes
	audios := protected.Group("/audios")
	audios.GET("/:id", audioHandler.GetAudio)

	log.Infof("Starting MedCast backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
