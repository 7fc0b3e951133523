package service

import (
	"context"
	"testing"

	"kanban/internal/models"
	"kanban/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardService(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoardService(repository.NewBoardRepository(db))
	ctx := context.Background()

	t.Run("CreateRequiresName", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.Board{}, 1)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("CreateSetsCreator", func(t *testing.T) {
		board, err := svc.Create(ctx, &models.Board{Name: "Sprint", CreatedBy: 999}, 7)
		require.NoError(t, err)
		assert.Equal(t, uint(7), board.CreatedBy)
	})

	t.Run("PatchRefetchesOnUpdate", func(t *testing.T) {
		board, err := svc.Create(ctx, &models.Board{Name: "Before"}, 7)
		require.NoError(t, err)

		patched, updated, err := svc.Patch(ctx, board.ID, map[string]interface{}{
			"name":             "After",
			"background_color": "#123456",
		})
		require.NoError(t, err)
		assert.True(t, updated)
		assert.Equal(t, "After", patched.Name)
		assert.Equal(t, "#123456", patched.BackgroundColor)
	})

	t.Run("PatchMissingRowNotUpdated", func(t *testing.T) {
		patched, updated, err := svc.Patch(ctx, 99999, map[string]interface{}{"name": "ghost"})
		require.NoError(t, err)
		assert.False(t, updated)
		assert.Nil(t, patched)
	})

	t.Run("DeleteMissingBoard", func(t *testing.T) {
		err := svc.Delete(ctx, 99999)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.Status)
	})
}

func TestBoardUserServiceRoleValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewBoardUserService(repository.NewBoardUserRepository(db))
	ctx := context.Background()

	t.Run("RejectsUnknownRole", func(t *testing.T) {
		_, err := svc.Create(ctx, &models.BoardUser{BoardID: 1, UserID: 1, Role: "superuser"})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Status)
	})

	t.Run("AcceptsKnownRoles", func(t *testing.T) {
		for i, role := range []string{models.RoleOwner, models.RoleEditor, models.RoleViewer} {
			_, err := svc.Create(ctx, &models.BoardUser{BoardID: uint(i + 1), UserID: 1, Role: role})
			require.NoError(t, err)
		}
	})

	t.Run("PatchRejectsUnknownRole", func(t *testing.T) {
		_, _, err := svc.Patch(ctx, 1, 1, map[string]interface{}{"role": "root"})
		require.Error(t, err)
	})

	t.Run("PatchStarred", func(t *testing.T) {
		membership, updated, err := svc.Patch(ctx, 1, 1, map[string]interface{}{"starred": true})
		require.NoError(t, err)
		assert.True(t, updated)
		assert.True(t, membership.Starred)
	})
}
