package persistent

import (
	"database/sql"
	"time"

	"artmarket/internal/entity"
)

// artworkRow is one row of the artworks × images × tags left join: full
// artwork columns plus at most one image and one tag mapping. Image and
// tag columns are NULL when the join found no match.
type artworkRow struct {
	ID          string         `gorm:"column:id"`
	OwnerID     string         `gorm:"column:owner_id"`
	Username    string         `gorm:"column:username"`
	AvatarURL   string         `gorm:"column:avatar_url"`
	Title       string         `gorm:"column:title"`
	Description string         `gorm:"column:description"`
	Price       float64        `gorm:"column:price"`
	Status      string         `gorm:"column:status"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	ImageID     sql.NullString `gorm:"column:image_id"`
	FileRef     sql.NullString `gorm:"column:file_ref"`
	PreviewRef  sql.NullString `gorm:"column:preview_ref"`
	TagID       sql.NullString `gorm:"column:tag_id"`
	TagName     sql.NullString `gorm:"column:tag_name"`
}

// groupArtworkRows collapses the denormalized row set into one artwork
// per distinct id. Output order is the order of each artwork's first
// appearance; Images and Tags are deduplicated by id, also in first
// appearance order. Rows for the same artwork do not need to be
// contiguous. The function is pure: no side effects, empty input yields
// an empty slice.
func groupArtworkRows(rows []artworkRow) []*entity.Artwork {
	out := make([]*entity.Artwork, 0, len(rows))
	byID := make(map[string]*entity.Artwork)
	seenImage := make(map[string]map[string]bool)
	seenTag := make(map[string]map[string]bool)

	for _, r := range rows {
		art, ok := byID[r.ID]
		if !ok {
			art = &entity.Artwork{
				ID:          r.ID,
				OwnerID:     r.OwnerID,
				Username:    r.Username,
				AvatarURL:   r.AvatarURL,
				Title:       r.Title,
				Description: r.Description,
				Price:       r.Price,
				Status:      entity.ArtworkStatus(r.Status),
				Images:      []entity.Image{},
				Tags:        []entity.Tag{},
				CreatedAt:   r.CreatedAt,
			}
			byID[r.ID] = art
			seenImage[r.ID] = make(map[string]bool)
			seenTag[r.ID] = make(map[string]bool)
			out = append(out, art)
		}

		if r.ImageID.Valid && !seenImage[r.ID][r.ImageID.String] {
			art.Images = append(art.Images, entity.Image{
				ID:         r.ImageID.String,
				ArtworkID:  r.ID,
				FileRef:    r.FileRef.String,
				PreviewRef: r.PreviewRef.String,
			})
			seenImage[r.ID][r.ImageID.String] = true
		}

		if r.TagID.Valid && !seenTag[r.ID][r.TagID.String] {
			art.Tags = append(art.Tags, entity.Tag{
				ID:   r.TagID.String,
				Name: r.TagName.String,
			})
			seenTag[r.ID][r.TagID.String] = true
		}
	}

	return out
}
