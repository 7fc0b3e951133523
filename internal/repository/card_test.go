package repository

import (
	"context"
	"testing"

	"kanban/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCardRepository(db)
	ctx := context.Background()

	t.Run("CreateAndFilterByList", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &models.Card{Name: "One", ListID: 1, Position: 1}))
		require.NoError(t, repo.Create(ctx, &models.Card{Name: "Two", ListID: 1, Position: 2}))
		require.NoError(t, repo.Create(ctx, &models.Card{Name: "Other", ListID: 2, Position: 1}))

		cards, err := repo.FindAll(ctx, Filter{"list_id": 1})
		require.NoError(t, err)
		assert.Len(t, cards, 2)
	})

	t.Run("PatchPartialFields", func(t *testing.T) {
		card := &models.Card{Name: "Draft", ListID: 1, Position: 3, Description: "keep me"}
		require.NoError(t, repo.Create(ctx, card))

		rows, err := repo.Patch(ctx, card.ID, map[string]interface{}{
			"name":     "Final",
			"due_date": "2026-09-15",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		stored, err := repo.FindByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, "Final", stored.Name)
		assert.Equal(t, "2026-09-15", stored.DueDate)
		assert.Equal(t, "keep me", stored.Description)
	})

	t.Run("MoveBetweenLists", func(t *testing.T) {
		card := &models.Card{Name: "Mover", ListID: 1, Position: 9}
		require.NoError(t, repo.Create(ctx, card))

		rows, err := repo.Patch(ctx, card.ID, map[string]interface{}{
			"list_id":  2,
			"position": 1,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), rows)

		stored, err := repo.FindByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, uint(2), stored.ListID)
	})

	t.Run("Delete", func(t *testing.T) {
		card := &models.Card{Name: "Gone", ListID: 3, Position: 1}
		require.NoError(t, repo.Create(ctx, card))
		require.NoError(t, repo.Delete(ctx, card.ID))

		_, err := repo.FindByID(ctx, card.ID)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.Status)
	})
}
