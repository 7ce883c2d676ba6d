package usecase

import (
	"fmt"
	"strings"

	"artmarket/internal/entity"
	"artmarket/internal/repo/persistent"
)

type CommentUseCase interface {
	AddComment(userID, artworkID, text string) (*entity.Comment, error)
	DeleteComment(commentID, userID string, role entity.UserRole) error
	ListComments(artworkID string) ([]*entity.Comment, error)
}

type commentUseCase struct {
	commentRepo persistent.CommentRepository
	artworkRepo persistent.ArtworkRepository
	userRepo    persistent.UserRepository
}

func NewCommentUseCase(
	commentRepo persistent.CommentRepository,
	artworkRepo persistent.ArtworkRepository,
	userRepo persistent.UserRepository,
) CommentUseCase {
	return &commentUseCase{
		commentRepo: commentRepo,
		artworkRepo: artworkRepo,
		userRepo:    userRepo,
	}
}

func (uc *commentUseCase) AddComment(userID, artworkID, text string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("comment text is required: %w", entity.ErrValidation)
	}

	if _, err := uc.artworkRepo.GetDetail(artworkID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		UserID:    userID,
		ArtworkID: artworkID,
		Text:      text,
	}
	if err := uc.commentRepo.Create(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	if user, err := uc.userRepo.GetByID(userID); err == nil {
		comment.Username = user.Username
		comment.AvatarURL = user.AvatarURL
	}

	return comment, nil
}

// DeleteComment removes a comment. Only its author or an admin may do
// so.
func (uc *commentUseCase) DeleteComment(commentID, userID string, role entity.UserRole) error {
	comment, err := uc.commentRepo.GetByID(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID && role != entity.RoleAdmin {
		return fmt.Errorf("comment %s does not belong to the user: %w", commentID, entity.ErrUnauthorized)
	}

	return uc.commentRepo.Delete(commentID)
}

func (uc *commentUseCase) ListComments(artworkID string) ([]*entity.Comment, error) {
	return uc.commentRepo.ListByArtwork(artworkID)
}
