package persistent

import (
	"errors"
	"fmt"
	"strings"

	"artmarket/internal/entity"
	"artmarket/internal/model"

	"gorm.io/gorm"
)

type ArtworkRepository interface {
	ListPublic() ([]*entity.Artwork, error)
	ListAll() ([]*entity.Artwork, error)
	ListDraft() ([]*entity.Artwork, error)
	ListByOwner(ownerID string) ([]*entity.Artwork, error)
	ListPending() ([]*entity.Artwork, error)
	GetDetail(id string) (*entity.Artwork, error)
	CreateWithAssets(artwork *entity.Artwork, images []entity.Image, tagNames []string) error
	UpdateStatus(id string, status entity.ArtworkStatus) error
	GetImages(artworkID string) ([]entity.Image, error)
}

type artworkRepository struct {
	db *gorm.DB
}

func NewArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

const artworkJoinSelect = `
SELECT a.id, a.owner_id, a.title, a.description, a.price, a.status, a.created_at,
       u.username, u.avatar_url,
       ai.id AS image_id, ai.file_ref, ai.preview_ref,
       t.id AS tag_id, t.name AS tag_name
FROM artworks a
JOIN users u ON u.id = a.owner_id
LEFT JOIN artwork_images ai ON ai.artwork_id = a.id
LEFT JOIN artwork_tag_map tm ON tm.artwork_id = a.id
LEFT JOIN artwork_tags t ON t.id = tm.tag_id
`

func (r *artworkRepository) queryGrouped(where string, args ...interface{}) ([]*entity.Artwork, error) {
	var rows []artworkRow
	sql := artworkJoinSelect
	if where != "" {
		sql += "WHERE " + where + "\n"
	}
	sql += "ORDER BY a.created_at DESC"

	if err := r.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return groupArtworkRows(rows), nil
}

func (r *artworkRepository) ListPublic() ([]*entity.Artwork, error) {
	return r.queryGrouped("a.status IN (?, ?)", string(entity.StatusPublished), string(entity.StatusSold))
}

func (r *artworkRepository) ListAll() ([]*entity.Artwork, error) {
	return r.queryGrouped("")
}

func (r *artworkRepository) ListDraft() ([]*entity.Artwork, error) {
	return r.queryGrouped("a.status = ?", string(entity.StatusDraft))
}

func (r *artworkRepository) ListByOwner(ownerID string) ([]*entity.Artwork, error) {
	return r.queryGrouped("a.owner_id = ?", ownerID)
}

// ListPending skips the image/tag joins; the moderation queue only needs
// the artwork columns. Callers still get empty Images/Tags collections.
func (r *artworkRepository) ListPending() ([]*entity.Artwork, error) {
	var rows []artworkRow
	sql := `
SELECT a.id, a.owner_id, a.title, a.description, a.price, a.status, a.created_at,
       u.username, u.avatar_url
FROM artworks a
JOIN users u ON u.id = a.owner_id
WHERE a.status = ?
ORDER BY a.created_at DESC`

	if err := r.db.Raw(sql, string(entity.StatusPending)).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return groupArtworkRows(rows), nil
}

func (r *artworkRepository) GetDetail(id string) (*entity.Artwork, error) {
	grouped, err := r.queryGrouped("a.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(grouped) == 0 {
		return nil, entity.ErrNotFound
	}
	return grouped[0], nil
}

// CreateWithAssets inserts the artwork, its image rows, and its tag
// links in one transaction. Tag names are expected normalized (trimmed,
// lower-cased); duplicates within the payload are collapsed here so a
// tag is linked at most once.
func (r *artworkRepository) CreateWithAssets(artwork *entity.Artwork, images []entity.Image, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		artworkModel := &model.ArtworkModel{
			ID:          artwork.ID,
			OwnerID:     artwork.OwnerID,
			Title:       artwork.Title,
			Description: artwork.Description,
			Price:       artwork.Price,
			Status:      string(artwork.Status),
		}
		if err := tx.Create(artworkModel).Error; err != nil {
			return err
		}
		artwork.ID = artworkModel.ID
		artwork.CreatedAt = artworkModel.CreatedAt

		for i := range images {
			imageModel := &model.ArtworkImageModel{
				ID:         images[i].ID,
				ArtworkID:  artworkModel.ID,
				FileRef:    images[i].FileRef,
				PreviewRef: images[i].PreviewRef,
			}
			if err := tx.Create(imageModel).Error; err != nil {
				return err
			}
			images[i].ID = imageModel.ID
			images[i].ArtworkID = artworkModel.ID
		}

		seen := make(map[string]bool)
		for _, name := range tagNames {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true

			tag, err := findOrCreateTag(tx, name)
			if err != nil {
				return err
			}
			link := &model.ArtworkTagModel{
				ArtworkID: artworkModel.ID,
				TagID:     tag.ID,
			}
			if err := tx.Create(link).Error; err != nil {
				return err
			}
		}

		artwork.Images = images
		return nil
	})
}

func findOrCreateTag(tx *gorm.DB, name string) (*model.TagModel, error) {
	var tag model.TagModel
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = model.TagModel{Name: name}
	if err := tx.Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *artworkRepository) UpdateStatus(id string, status entity.ArtworkStatus) error {
	result := r.db.Model(&model.ArtworkModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *artworkRepository) GetImages(artworkID string) ([]entity.Image, error) {
	var imageModels []model.ArtworkImageModel
	if err := r.db.Where("artwork_id = ?", artworkID).Order("created_at ASC").Find(&imageModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load artwork images: %w", err)
	}

	images := make([]entity.Image, len(imageModels))
	for i, m := range imageModels {
		images[i] = entity.Image{
			ID:         m.ID,
			ArtworkID:  m.ArtworkID,
			FileRef:    m.FileRef,
			PreviewRef: m.PreviewRef,
		}
	}
	return images, nil
}
