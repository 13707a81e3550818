package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

func TestUserRepository_CreateAssignsIDAndForcesNonAdmin(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash", IsAdmin: true}
	err := repo.Create(user)
	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.False(t, user.IsAdmin, "registration must never grant admin")
	assert.False(t, user.CreatedAt.IsZero())

	second := &models.User{Username: "bob", Email: "bob@example.com", Password: "hash"}
	assert.NoError(t, repo.Create(second))
	assert.Equal(t, 2, second.ID)
}

func TestUserRepository_DuplicateUsernameAndEmail(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	assert.NoError(t, repo.Create(&models.User{Username: "alice", Email: "alice@example.com"}))

	err := repo.Create(&models.User{Username: "alice", Email: "other@example.com"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	err = repo.Create(&models.User{Username: "other", Email: "alice@example.com"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	// The failed inserts must not have created rows.
	_, err = repo.GetByUsername("other")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserRepository_LookupsAreCaseSensitive(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	assert.NoError(t, repo.Create(&models.User{Username: "Alice", Email: "Alice@Example.com"}))

	_, err := repo.GetByUsername("alice")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	user, err := repo.GetByUsername("Alice")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", user.Username)

	_, err = repo.GetByEmail("alice@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserRepository_SeedPreservesAdminFlag(t *testing.T) {
	repo := repositories.NewMemoryUserRepository(models.User{
		Username: "admin", Email: "admin@example.com", IsAdmin: true,
	})

	admin, err := repo.GetByUsername("admin")
	assert.NoError(t, err)
	assert.Equal(t, 1, admin.ID)
	assert.True(t, admin.IsAdmin)
}

func TestUserRepository_UpdateMergesAndReindexes(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	user := &models.User{Username: "alice", Email: "alice@example.com"}
	assert.NoError(t, repo.Create(user))

	first := "Alice"
	newEmail := "alice@new.example.com"
	updated, err := repo.Update(user.ID, models.UserUpdate{FirstName: &first, Email: &newEmail})
	assert.NoError(t, err)
	assert.Equal(t, "Alice", *updated.FirstName)
	assert.Nil(t, updated.LastName)
	assert.Equal(t, "alice", updated.Username)

	// Old email is released, new one resolves.
	_, err = repo.GetByEmail("alice@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	found, err := repo.GetByEmail(newEmail)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.Update(99, models.UserUpdate{FirstName: &first})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
