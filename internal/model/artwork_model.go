package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArtworkModel struct {
	ID          string              `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     string              `gorm:"type:uuid;not null;index" json:"owner_id"`
	Title       string              `gorm:"type:varchar(255);not null" json:"title"`
	Description string              `gorm:"type:text" json:"description"`
	Price       float64             `gorm:"type:decimal(10,2);not null" json:"price"`
	Status      string              `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Images      []ArtworkImageModel `gorm:"foreignKey:ArtworkID" json:"images,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (ArtworkModel) TableName() string {
	return "artworks"
}

func (a *ArtworkModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

type ArtworkImageModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	ArtworkID  string    `gorm:"type:uuid;not null;index" json:"artwork_id"`
	FileRef    string    `gorm:"type:varchar(500);not null" json:"file_ref"`
	PreviewRef string    `gorm:"type:varchar(500);not null" json:"preview_ref"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ArtworkImageModel) TableName() string {
	return "artwork_images"
}

func (i *ArtworkImageModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

type TagModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (TagModel) TableName() string {
	return "artwork_tags"
}

func (t *TagModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// ArtworkTagModel links artworks and tags; the composite unique index
// keeps a tag linked at most once per artwork.
type ArtworkTagModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ArtworkID string    `gorm:"type:uuid;not null;uniqueIndex:idx_artwork_tag" json:"artwork_id"`
	TagID     string    `gorm:"type:uuid;not null;uniqueIndex:idx_artwork_tag" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ArtworkTagModel) TableName() string {
	return "artwork_tag_map"
}

func (m *ArtworkTagModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
