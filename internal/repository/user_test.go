package repository

import (
	"context"
	"testing"

	"inkstream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("CreateAndGet", func(t *testing.T) {
		user := &models.User{Username: "poet", Email: "poet@example.com", Password: "hash"}
		require.NoError(t, repo.Create(ctx, user))
		assert.NotZero(t, user.ID)

		byName, err := repo.GetByUsername(ctx, "poet")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)

		byEmail, err := repo.GetByEmail(ctx, "poet@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)
	})

	t.Run("GetByUsernameNotFound", func(t *testing.T) {
		_, err := repo.GetByUsername(ctx, "ghost")
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("GetByEmailAbsentReturnsNil", func(t *testing.T) {
		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("DuplicateUsernameRejected", func(t *testing.T) {
		err := repo.Create(ctx, &models.User{Username: "poet", Email: "other@example.com", Password: "hash"})
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	})
}

func TestGroupRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Group{Title: "Travel", Slug: "travel", Description: "places"}))

	group, err := repo.GetBySlug(ctx, "travel")
	require.NoError(t, err)
	assert.Equal(t, "Travel", group.Title)

	_, err = repo.GetBySlug(ctx, "missing")
	assert.Error(t, err)

	groups, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	// slugs are unique
	err = repo.Create(ctx, &models.Group{Title: "Travel 2", Slug: "travel"})
	assert.Error(t, err)
}
