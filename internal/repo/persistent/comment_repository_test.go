package persistent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"artmarket/internal/entity"
)

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ann := seedUser(t, db, "ann")
	bob := seedUser(t, db, "bob")
	art := seedArtwork(t, db, ann.ID, "Dawn", entity.StatusPublished, 120)

	first := &entity.Comment{UserID: bob.ID, ArtworkID: art.ID, Text: "love the light"}
	assert.NoError(t, repo.Create(first))
	assert.NotEmpty(t, first.ID)

	second := &entity.Comment{UserID: ann.ID, ArtworkID: art.ID, Text: "thanks!"}
	assert.NoError(t, repo.Create(second))

	got, err := repo.ListByArtwork(art.ID)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "bob", got[0].Username)
	assert.Equal(t, "love the light", got[0].Text)
	assert.Equal(t, "ann", got[1].Username)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ann := seedUser(t, db, "ann")
	art := seedArtwork(t, db, ann.ID, "Dawn", entity.StatusPublished, 120)

	comment := &entity.Comment{UserID: ann.ID, ArtworkID: art.ID, Text: "first"}
	assert.NoError(t, repo.Create(comment))

	got, err := repo.GetByID(comment.ID)
	assert.NoError(t, err)
	assert.Equal(t, "first", got.Text)

	assert.NoError(t, repo.Delete(comment.ID))

	_, err = repo.GetByID(comment.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(comment.ID), entity.ErrNotFound)
}

func TestCommentRepository_ListByArtwork_Empty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	got, err := repo.ListByArtwork("missing")
	assert.NoError(t, err)
	assert.Len(t, got, 0)
	assert.NotNil(t, got)
}
