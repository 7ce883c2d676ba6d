package persistent

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"artmarket/internal/entity"
	"artmarket/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&model.UserModel{},
		&model.ArtworkModel{},
		&model.ArtworkImageModel{},
		&model.TagModel{},
		&model.ArtworkTagModel{},
		&model.OrderModel{},
		&model.OrderItemModel{},
		&model.CommentModel{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.UserModel {
	t.Helper()

	user := &model.UserModel{
		Email:    username + "@example.com",
		Username: username,
		Password: "hash",
		Role:     string(entity.RoleUser),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedArtwork(t *testing.T, db *gorm.DB, ownerID string, title string, status entity.ArtworkStatus, price float64) *model.ArtworkModel {
	t.Helper()

	art := &model.ArtworkModel{
		OwnerID: ownerID,
		Title:   title,
		Price:   price,
		Status:  string(status),
	}
	if err := db.Create(art).Error; err != nil {
		t.Fatalf("seed artwork %s: %v", title, err)
	}
	return art
}

func seedImage(t *testing.T, db *gorm.DB, artworkID, fileRef, previewRef string) *model.ArtworkImageModel {
	t.Helper()

	img := &model.ArtworkImageModel{
		ArtworkID:  artworkID,
		FileRef:    fileRef,
		PreviewRef: previewRef,
	}
	if err := db.Create(img).Error; err != nil {
		t.Fatalf("seed image %s: %v", fileRef, err)
	}
	return img
}
