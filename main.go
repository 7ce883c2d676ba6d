package main

import (
	"artmarket/internal/app"
	"artmarket/pkg/cache"
	"artmarket/pkg/config"
	"artmarket/pkg/database"
	"artmarket/pkg/logger"
	"artmarket/pkg/queue"
	"artmarket/pkg/storage"
)

// @title           Art Market API
// @version         1.0
// @description     Marketplace backend: artwork uploads, moderation, orders with manual payment review, purchased-file downloads.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	var fileStorage storage.Storage
	if cfg.StorageDriver == "s3" {
		fileStorage, err = storage.NewS3(cfg)
	} else {
		fileStorage, err = storage.NewLocal(cfg.UploadDir)
	}
	if err != nil {
		log.Error("Failed to initialize storage: %v", err)
		panic(err)
	}

	// The queue is optional: the service still runs if RabbitMQ is down,
	// it just stops publishing order events.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, order events disabled: %v", err)
		queueClient = nil
	}

	app.Run(cfg, log, db, fileStorage, queueClient, redisClient)
}
