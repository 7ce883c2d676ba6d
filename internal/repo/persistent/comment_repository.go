package persistent

import (
	"errors"
	"time"

	"artmarket/internal/entity"
	"artmarket/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *entity.Comment) error
	GetByID(id string) (*entity.Comment, error)
	Delete(id string) error
	ListByArtwork(artworkID string) ([]*entity.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *entity.Comment) error {
	commentModel := &model.CommentModel{
		ID:        comment.ID,
		UserID:    comment.UserID,
		ArtworkID: comment.ArtworkID,
		Text:      comment.Text,
	}
	if err := r.db.Create(commentModel).Error; err != nil {
		return err
	}
	comment.ID = commentModel.ID
	comment.CreatedAt = commentModel.CreatedAt
	return nil
}

func (r *commentRepository) GetByID(id string) (*entity.Comment, error) {
	var commentModel model.CommentModel
	if err := r.db.Where("id = ?", id).First(&commentModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return &entity.Comment{
		ID:        commentModel.ID,
		UserID:    commentModel.UserID,
		ArtworkID: commentModel.ArtworkID,
		Text:      commentModel.Text,
		CreatedAt: commentModel.CreatedAt,
	}, nil
}

func (r *commentRepository) Delete(id string) error {
	result := r.db.Delete(&model.CommentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

type commentRow struct {
	ID        string    `gorm:"column:id"`
	UserID    string    `gorm:"column:user_id"`
	ArtworkID string    `gorm:"column:artwork_id"`
	Text      string    `gorm:"column:text"`
	Username  string    `gorm:"column:username"`
	AvatarURL string    `gorm:"column:avatar_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (r *commentRepository) ListByArtwork(artworkID string) ([]*entity.Comment, error) {
	var rows []commentRow
	query := `
SELECT c.id, c.user_id, c.artwork_id, c.text, c.created_at,
       u.username, u.avatar_url
FROM comments c
JOIN users u ON u.id = c.user_id
WHERE c.artwork_id = ?
ORDER BY c.created_at ASC`

	if err := r.db.Raw(query, artworkID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	comments := make([]*entity.Comment, len(rows))
	for i, row := range rows {
		comments[i] = &entity.Comment{
			ID:        row.ID,
			UserID:    row.UserID,
			ArtworkID: row.ArtworkID,
			Text:      row.Text,
			Username:  row.Username,
			AvatarURL: row.AvatarURL,
			CreatedAt: row.CreatedAt,
		}
	}
	return comments, nil
}
