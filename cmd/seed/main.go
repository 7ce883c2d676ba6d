package main

import (
	"fmt"

	"artmarket/internal/model"
	"artmarket/pkg/config"
	"artmarket/pkg/database"
	"artmarket/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	users := []struct {
		email    string
		username string
		password string
		role     string
	}{
		{"admin@test.com", "admin", "password123", "admin"},
		{"alice@test.com", "alice_paints", "password123", "user"},
		{"bob@test.com", "bob_collects", "password123", "user"},
	}

	userIDs := make(map[string]string)

	for _, data := range users {
		var existing model.UserModel
		result := db.Where("email = ?", data.email).First(&existing)
		if result.Error == nil {
			log.Info("User %s already exists, skipping", data.username)
			userIDs[data.username] = existing.ID
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(data.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user := &model.UserModel{
			Email:    data.email,
			Username: data.username,
			Password: string(hash),
			Role:     data.role,
			IsActive: true,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", data.username, err)
		}
		userIDs[data.username] = user.ID
		log.Info("Created user %s", data.username)
	}

	artworks := []struct {
		owner  string
		title  string
		price  float64
		status string
	}{
		{"alice_paints", "Morning Over the Bay", 120, "published"},
		{"alice_paints", "Quiet Street", 85, "published"},
		{"alice_paints", "Unfinished Study", 40, "draft"},
		{"bob_collects", "First Attempt", 15, "pending"},
	}

	for _, data := range artworks {
		var existing model.ArtworkModel
		result := db.Where("owner_id = ? AND title = ?", userIDs[data.owner], data.title).First(&existing)
		if result.Error == nil {
			log.Info("Artwork %q already exists, skipping", data.title)
			continue
		}

		artwork := &model.ArtworkModel{
			OwnerID: userIDs[data.owner],
			Title:   data.title,
			Price:   data.price,
			Status:  data.status,
		}
		if err := db.Create(artwork).Error; err != nil {
			return fmt.Errorf("failed to create artwork %q: %w", data.title, err)
		}
		log.Info("Created artwork %q (%s)", data.title, data.status)
	}

	return nil
}
