package entity

import "time"

type ArtworkStatus string

const (
	StatusDraft     ArtworkStatus = "draft"
	StatusPending   ArtworkStatus = "pending"
	StatusApproved  ArtworkStatus = "approved"
	StatusRejected  ArtworkStatus = "rejected"
	StatusPublished ArtworkStatus = "published"
	StatusSold      ArtworkStatus = "sold"
)

// ModerationStatuses are the statuses an admin may set directly.
// "sold" is excluded: it is only reachable through payment acceptance.
var ModerationStatuses = []ArtworkStatus{
	StatusApproved,
	StatusRejected,
	StatusPublished,
	StatusDraft,
}

func IsModerationStatus(s ArtworkStatus) bool {
	for _, allowed := range ModerationStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

type Artwork struct {
	ID          string        `json:"id"`
	OwnerID     string        `json:"owner_id"`
	Username    string        `json:"username"`
	AvatarURL   string        `json:"avatar_url"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       float64       `json:"price"`
	Status      ArtworkStatus `json:"status"`
	Images      []Image       `json:"images"`
	Tags        []Tag         `json:"tags"`
	CreatedAt   time.Time     `json:"created_at"`
}

type Image struct {
	ID         string `json:"id"`
	ArtworkID  string `json:"artwork_id"`
	FileRef    string `json:"file_ref"`
	PreviewRef string `json:"preview_ref"`
}

// Tag names are canonical: trimmed and lower-cased at ingestion,
// globally unique by name.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
