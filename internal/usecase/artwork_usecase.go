package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path"
	"time"

	"artmarket/internal/entity"
	"artmarket/internal/repo/persistent"
	"artmarket/pkg/imaging"
	"artmarket/pkg/logger"
	"artmarket/pkg/queue"
	"artmarket/pkg/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const artworkCacheTTL = 10 * time.Minute

type ArtworkUseCase interface {
	UploadArtwork(ownerID, title, description string, price float64, tags []string, files []*multipart.FileHeader) (*entity.Artwork, error)
	ListPublic() ([]*entity.Artwork, error)
	ListAll() ([]*entity.Artwork, error)
	ListDraft() ([]*entity.Artwork, error)
	ListMine(ownerID string) ([]*entity.Artwork, error)
	ListPending() ([]*entity.Artwork, error)
	GetDetail(id string) (*entity.Artwork, error)
	Moderate(id string, status entity.ArtworkStatus) error
}

type artworkUseCase struct {
	artworkRepo persistent.ArtworkRepository
	storage     storage.Storage
	previews    *imaging.Generator
	redisClient *redis.Client
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewArtworkUseCase(
	artworkRepo persistent.ArtworkRepository,
	fileStorage storage.Storage,
	previews *imaging.Generator,
	redisClient *redis.Client,
	queueClient *queue.Client,
	log *logger.Logger,
) ArtworkUseCase {
	return &artworkUseCase{
		artworkRepo: artworkRepo,
		storage:     fileStorage,
		previews:    previews,
		redisClient: redisClient,
		queueClient: queueClient,
		logger:      log,
	}
}

// UploadArtwork stores each original, derives its preview, and creates
// the artwork with its image rows and tag links in one transaction. New
// artworks always enter the moderation queue as pending.
func (uc *artworkUseCase) UploadArtwork(ownerID, title, description string, price float64, tags []string, files []*multipart.FileHeader) (*entity.Artwork, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", entity.ErrValidation)
	}
	if price < 0 {
		return nil, fmt.Errorf("price cannot be negative: %w", entity.ErrValidation)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("at least one image file is required: %w", entity.ErrValidation)
	}

	var images []entity.Image
	for _, file := range files {
		image, err := uc.storeImagePair(file)
		if err != nil {
			return nil, err
		}
		images = append(images, *image)
	}

	artwork := &entity.Artwork{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Price:       price,
		Status:      entity.StatusPending,
	}

	if err := uc.artworkRepo.CreateWithAssets(artwork, images, tags); err != nil {
		return nil, fmt.Errorf("failed to create artwork: %w", err)
	}

	return artwork, nil
}

// storeImagePair saves the original as uploaded and a resized JPEG
// preview next to it.
func (uc *artworkUseCase) storeImagePair(file *multipart.FileHeader) (*entity.Image, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", file.Filename, err)
	}
	defer src.Close()

	name := uuid.New().String()
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	originalKey := fmt.Sprintf("artworks/original/%s%s", name, path.Ext(file.Filename))
	fileRef, err := uc.storage.Save(originalKey, src, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store original %s: %w", file.Filename, err)
	}

	// re-open: the first reader was consumed by the original upload
	src2, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to reopen file %s: %w", file.Filename, err)
	}
	defer src2.Close()

	preview, err := uc.previews.Preview(src2)
	if err != nil {
		return nil, fmt.Errorf("failed to generate preview for %s: %w", file.Filename, err)
	}

	previewKey := fmt.Sprintf("artworks/preview/%s.jpg", name)
	previewRef, err := uc.storage.Save(previewKey, preview, "image/jpeg")
	if err != nil {
		return nil, fmt.Errorf("failed to store preview for %s: %w", file.Filename, err)
	}

	return &entity.Image{FileRef: fileRef, PreviewRef: previewRef}, nil
}

func (uc *artworkUseCase) ListPublic() ([]*entity.Artwork, error) {
	return uc.artworkRepo.ListPublic()
}

func (uc *artworkUseCase) ListAll() ([]*entity.Artwork, error) {
	return uc.artworkRepo.ListAll()
}

func (uc *artworkUseCase) ListDraft() ([]*entity.Artwork, error) {
	return uc.artworkRepo.ListDraft()
}

func (uc *artworkUseCase) ListMine(ownerID string) ([]*entity.Artwork, error) {
	return uc.artworkRepo.ListByOwner(ownerID)
}

func (uc *artworkUseCase) ListPending() ([]*entity.Artwork, error) {
	return uc.artworkRepo.ListPending()
}

// GetDetail serves the aggregated artwork, cached briefly in redis to
// keep the join off the hot path.
func (uc *artworkUseCase) GetDetail(id string) (*entity.Artwork, error) {
	ctx := context.Background()
	cacheKey := fmt.Sprintf("artwork:%s", id)

	if uc.redisClient != nil {
		if cached, err := uc.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			var artwork entity.Artwork
			if err := json.Unmarshal([]byte(cached), &artwork); err == nil {
				return &artwork, nil
			}
		}
	}

	artwork, err := uc.artworkRepo.GetDetail(id)
	if err != nil {
		return nil, err
	}

	if uc.redisClient != nil {
		if data, err := json.Marshal(artwork); err == nil {
			uc.redisClient.Set(ctx, cacheKey, data, artworkCacheTTL)
		}
	}

	return artwork, nil
}

// Moderate sets the artwork status to one of the admin-settable values.
// "sold" is not in that set; it is only reachable through payment
// acceptance.
func (uc *artworkUseCase) Moderate(id string, status entity.ArtworkStatus) error {
	if !entity.IsModerationStatus(status) {
		return fmt.Errorf("status %q is not allowed: %w", status, entity.ErrValidation)
	}

	if err := uc.artworkRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	if uc.redisClient != nil {
		uc.redisClient.Del(context.Background(), fmt.Sprintf("artwork:%s", id))
	}

	if uc.queueClient != nil {
		event := map[string]interface{}{
			"type":       "artwork_moderated",
			"artwork_id": id,
			"status":     string(status),
		}
		go func() {
			if err := uc.queueClient.PublishOrderEvent(event); err != nil {
				uc.logger.Error("Failed to publish moderation event for artwork %s: %v", id, err)
			}
		}()
	}

	return nil
}
