package server

import (
	"encoding/json"
	"fmt"
	"testing"

	"kanban/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Exercises the whole board lifecycle end to end: create, populate,
// reorder, and tear down.
func TestBoardLifecycle(t *testing.T) {
	app, _, _ := setupTestApp(t)
	user := registerUser(t, app, "builder")

	// Create a board.
	resp, payload := doJSON(t, app, "POST", "/api/boards/", user.Token, map[string]string{
		"name":             "Release",
		"background_color": "#0079bf",
		"text_color":       "#ffffff",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(payload))

	var board models.Board
	require.NoError(t, json.Unmarshal(payload, &board))
	assert.Equal(t, user.ID, board.CreatedBy)

	// The creator shows up as owner.
	resp, payload = doJSON(t, app, "GET",
		fmt.Sprintf("/api/board-users/?board_id=%d", board.ID), user.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var memberships []models.BoardUser
	require.NoError(t, json.Unmarshal(payload, &memberships))
	require.Len(t, memberships, 1)
	assert.Equal(t, models.RoleOwner, memberships[0].Role)

	// Add a list.
	resp, payload = doJSON(t, app, "POST", "/api/lists/", user.Token, map[string]interface{}{
		"name":     "In Progress",
		"board_id": board.ID,
		"position": 1,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(payload))

	var list models.List
	require.NoError(t, json.Unmarshal(payload, &list))

	// Add a card.
	resp, payload = doJSON(t, app, "POST", "/api/cards/", user.Token, map[string]interface{}{
		"name":     "Ship it",
		"list_id":  list.ID,
		"position": 1,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(payload))

	var card models.Card
	require.NoError(t, json.Unmarshal(payload, &card))

	// Move the card via PATCH and confirm the refetched row comes back.
	resp, payload = doJSON(t, app, "PATCH",
		fmt.Sprintf("/api/cards/%d", card.ID), user.Token, map[string]interface{}{
			"position": 5,
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var moved models.Card
	require.NoError(t, json.Unmarshal(payload, &moved))
	assert.Equal(t, 5, moved.Position)
	assert.Equal(t, "Ship it", moved.Name)

	// Lists scoped to the board.
	resp, payload = doJSON(t, app, "GET",
		fmt.Sprintf("/api/lists/?board_id=%d", board.ID), user.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var lists []models.List
	require.NoError(t, json.Unmarshal(payload, &lists))
	assert.Len(t, lists, 1)

	// Delete the board; everything under it goes away.
	resp, _ = doJSON(t, app, "DELETE",
		fmt.Sprintf("/api/boards/%d", board.ID), user.Token, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET",
		fmt.Sprintf("/api/lists/%d", list.ID), user.Token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET",
		fmt.Sprintf("/api/cards/%d", card.ID), user.Token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, payload = doJSON(t, app, "GET",
		fmt.Sprintf("/api/board-users/?board_id=%d", board.ID), user.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(payload, &memberships))
	assert.Empty(t, memberships)
}

func TestBoardSharing(t *testing.T) {
	app, _, _ := setupTestApp(t)
	owner := registerUser(t, app, "shareowner")
	guest := registerUser(t, app, "shareguest")

	resp, payload := doJSON(t, app, "POST", "/api/boards/", owner.Token, map[string]string{
		"name": "Shared",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var board models.Board
	require.NoError(t, json.Unmarshal(payload, &board))

	// Invite the guest as editor.
	resp, payload = doJSON(t, app, "POST", "/api/board-users/", owner.Token, map[string]interface{}{
		"board_id": board.ID,
		"user_id":  guest.ID,
		"role":     models.RoleEditor,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(payload))

	// Guest stars the board.
	resp, payload = doJSON(t, app, "PATCH",
		fmt.Sprintf("/api/board-users/?board_id=%d&user_id=%d", board.ID, guest.ID),
		guest.Token, map[string]interface{}{"starred": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var membership models.BoardUser
	require.NoError(t, json.Unmarshal(payload, &membership))
	assert.True(t, membership.Starred)
	assert.Equal(t, models.RoleEditor, membership.Role)

	// Fetch by composite key.
	resp, payload = doJSON(t, app, "GET",
		fmt.Sprintf("/api/board-users/find?board_id=%d&user_id=%d", board.ID, guest.ID),
		owner.Token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(payload, &membership))
	assert.True(t, membership.Starred)

	// Remove the guest.
	resp, _ = doJSON(t, app, "DELETE",
		fmt.Sprintf("/api/board-users/?board_id=%d&user_id=%d", board.ID, guest.ID),
		owner.Token, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET",
		fmt.Sprintf("/api/board-users/find?board_id=%d&user_id=%d", board.ID, guest.ID),
		owner.Token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
