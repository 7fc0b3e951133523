package repository

import (
	"context"
	"testing"

	"kanban/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, staticSigner)
	ctx := context.Background()

	t.Run("CreatePersistsSignedToken", func(t *testing.T) {
		user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
		err := repo.Create(ctx, user)
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "token-alice", user.Token)

		stored, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "token-alice", stored.Token)
	})

	t.Run("CreateDuplicateEmail", func(t *testing.T) {
		dup := &models.User{Username: "alice2", Email: "alice@example.com", Password: "hash"}
		err := repo.Create(ctx, dup)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("FindByTokenMissReturnsNil", func(t *testing.T) {
		user, err := repo.FindByToken(ctx, "no-such-token")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("FindByTokenHit", func(t *testing.T) {
		user, err := repo.FindByToken(ctx, "token-alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("FindByEmailMissReturnsNil", func(t *testing.T) {
		user, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("CountAlwaysZero", func(t *testing.T) {
		count, err := repo.Count(ctx, nil)
		assert.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("PatchWhitelistsFields", func(t *testing.T) {
		user := &models.User{Username: "bob", Email: "bob@example.com", Password: "hash"}
		require.NoError(t, repo.Create(ctx, user))

		rows, err := repo.Patch(ctx, user.ID, map[string]interface{}{
			"username": "robert",
			"password": "sneaky",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		stored, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "robert", stored.Username)
		assert.Equal(t, "hash", stored.Password)
	})

	t.Run("PatchOnlyUnknownFields", func(t *testing.T) {
		_, err := repo.Patch(ctx, 1, map[string]interface{}{"password": "x"})
		require.Error(t, err)
	})

	t.Run("PatchMissingRowReportsZero", func(t *testing.T) {
		rows, err := repo.Patch(ctx, 99999, map[string]interface{}{"username": "ghost"})
		assert.NoError(t, err)
		assert.Zero(t, rows)
	})

	t.Run("DeleteIsNoOp", func(t *testing.T) {
		user := &models.User{Username: "carol", Email: "carol@example.com", Password: "hash"}
		require.NoError(t, repo.Create(ctx, user))

		require.NoError(t, repo.Delete(ctx, user.ID))

		stored, err := repo.FindByID(ctx, user.ID)
		assert.NoError(t, err)
		assert.NotNil(t, stored)
	})

	t.Run("TokenRotation", func(t *testing.T) {
		user := &models.User{Username: "dave", Email: "dave@example.com", Password: "hash"}
		require.NoError(t, repo.Create(ctx, user))

		require.NoError(t, repo.UpdateToken(ctx, user.ID, "fresh-token"))

		old, err := repo.FindByToken(ctx, "token-dave")
		assert.NoError(t, err)
		assert.Nil(t, old)

		fresh, err := repo.FindByToken(ctx, "fresh-token")
		require.NoError(t, err)
		require.NotNil(t, fresh)
		assert.Equal(t, user.ID, fresh.ID)
	})
}
