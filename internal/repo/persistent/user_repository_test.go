package persistent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"artmarket/internal/entity"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &entity.User{
		Email:    "ann@example.com",
		Username: "ann",
		Password: "hash",
		Role:     entity.RoleUser,
		IsActive: true,
	}
	assert.NoError(t, repo.Create(user))
	assert.NotEmpty(t, user.ID)

	byID, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "ann", byID.Username)

	byEmail, err := repo.GetByEmail("ann@example.com")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byName, err := repo.GetByUsername("ann")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	first := &entity.User{Email: "ann@example.com", Username: "ann", Password: "hash"}
	assert.NoError(t, repo.Create(first))

	second := &entity.User{Email: "ann@example.com", Username: "ann2", Password: "hash"}
	assert.Error(t, repo.Create(second))
}

func TestUserRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	seedUser(t, db, "ann")
	seedUser(t, db, "bob")

	users, err := repo.List()
	assert.NoError(t, err)
	assert.Len(t, users, 2)

	names := []string{users[0].Username, users[1].Username}
	assert.ElementsMatch(t, []string{"ann", "bob"}, names)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &entity.User{Email: "ann@example.com", Username: "ann", Password: "hash"}
	assert.NoError(t, repo.Create(user))

	user.Bio = "painter"
	user.AvatarURL = "avatars/ann.jpg"
	assert.NoError(t, repo.Update(user))

	got, err := repo.GetByID(user.ID)
	assert.NoError(t, err)
	assert.Equal(t, "painter", got.Bio)
	assert.Equal(t, "avatars/ann.jpg", got.AvatarURL)
}
