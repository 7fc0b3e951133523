package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kanban/internal/config"
	"kanban/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "SecurePass12!@"

func setupTestApp(t *testing.T) (*fiber.App, *Server, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardUser{},
		&models.List{},
		&models.Card{},
	)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:      "0",
		JWTSecret: "test-secret-used-only-in-tests",
		Env:       "test",
	}

	srv, err := NewServerWithDeps(cfg, db, nil)
	require.NoError(t, err)

	app := fiber.New(fiber.Config{
		ErrorHandler: srv.ErrorHandler,
	})
	srv.SetupRoutes(app)

	return app, srv, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, []byte) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

// registerUser creates an account through the API and returns the user
// with its session token.
func registerUser(t *testing.T, app *fiber.App, username string) models.User {
	resp, payload := doJSON(t, app, "POST", "/api/users/register", "", map[string]string{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": testPassword,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(payload))

	var user models.User
	require.NoError(t, json.Unmarshal(payload, &user))
	require.NotEmpty(t, user.Token)
	return user
}

func decodeEnvelope(t *testing.T, payload []byte) models.ErrorResponse {
	var envelope models.ErrorResponse
	require.NoError(t, json.Unmarshal(payload, &envelope))
	return envelope
}
