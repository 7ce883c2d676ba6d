package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appHTTP "artmarket/internal/controller/http"
	"artmarket/internal/entity"
	"artmarket/internal/repo/persistent"
	"artmarket/internal/usecase"
	"artmarket/pkg/config"
	"artmarket/pkg/imaging"
	"artmarket/pkg/jwt"
	"artmarket/pkg/logger"
	"artmarket/pkg/middleware"
	"artmarket/pkg/queue"
	"artmarket/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "artmarket/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, fileStorage storage.Storage, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	previews := imaging.NewGenerator(cfg.PreviewWidth, cfg.PreviewQuality)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	artworkRepo := persistent.NewArtworkRepository(db)
	orderRepo := persistent.NewOrderRepository(db)
	commentRepo := persistent.NewCommentRepository(db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, fileStorage, log)
	artworkUseCase := usecase.NewArtworkUseCase(artworkRepo, fileStorage, previews, redisClient, queueClient, log)
	orderUseCase := usecase.NewOrderUseCase(orderRepo, artworkRepo, fileStorage, redisClient, queueClient, log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, artworkRepo, userRepo)

	// Initialize HTTP handlers
	authHandler := appHTTP.NewAuthHandler(authUseCase, log)
	artworkHandler := appHTTP.NewArtworkHandler(artworkUseCase, log)
	orderHandler := appHTTP.NewOrderHandler(orderUseCase, log)
	commentHandler := appHTTP.NewCommentHandler(commentUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Public routes
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/artworks", artworkHandler.ListPublic)
		api.GET("/artworks/:id", artworkHandler.GetDetail)
		api.GET("/artworks/:id/comments", commentHandler.ListComments)
		api.GET("/users/:id", authHandler.GetProfile)
	}

	// Authenticated routes
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(jwtService))
	if redisClient != nil {
		auth.Use(middleware.RateLimitMiddleware(redisClient, cfg.RateLimitPerMinute, time.Minute))
	}

	{
		auth.GET("/auth/me", authHandler.Me)
		auth.PUT("/auth/me", authHandler.UpdateProfile)
		auth.POST("/auth/me/avatar", authHandler.UploadAvatar)

		auth.POST("/artworks", artworkHandler.Upload)
		auth.GET("/artworks/mine", artworkHandler.ListMine)
		auth.POST("/artworks/:id/comments", commentHandler.AddComment)
		auth.DELETE("/comments/:id", commentHandler.DeleteComment)

		auth.POST("/orders", orderHandler.CreateOrder)
		auth.GET("/orders", orderHandler.ListMyOrders)
		auth.GET("/orders/sales", orderHandler.ListSales)
		auth.GET("/orders/:id", orderHandler.GetOrder)
		auth.POST("/orders/:id/payment", orderHandler.SubmitPayment)
		auth.GET("/orders/:id/download", orderHandler.DownloadArtwork)
	}

	// Admin routes
	admin := auth.Group("/admin")
	admin.Use(middleware.RequireRole(string(entity.RoleAdmin)))

	{
		admin.GET("/artworks", artworkHandler.ListAll)
		admin.GET("/artworks/draft", artworkHandler.ListDraft)
		admin.GET("/artworks/pending", artworkHandler.ListPending)
		admin.PUT("/artworks/:id/status", artworkHandler.Moderate)

		admin.GET("/orders", orderHandler.ListAllOrders)
		admin.POST("/orders/:id/accept", orderHandler.AcceptPayment)
		admin.POST("/orders/:id/reject", orderHandler.RejectPayment)

		admin.GET("/users", authHandler.ListUsers)
		admin.PUT("/users/:id/password", authHandler.ResetPassword)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Art market service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Service exited")
}
