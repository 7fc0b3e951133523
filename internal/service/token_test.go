package service

import (
	"testing"

	"kanban/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSignAndParse(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)
	user := &models.User{ID: 42, Username: "alice", Email: "alice@example.com"}

	token, err := issuer.Sign(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.NotEmpty(t, claims["jti"])

	id, err := UserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokensAreUniquePerIssue(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)
	user := &models.User{ID: 1, Username: "bob", Email: "bob@example.com"}

	first, err := issuer.Sign(user)
	require.NoError(t, err)
	second, err := issuer.Sign(user)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer(testSecret)
	other := NewTokenIssuer("a-different-secret")
	user := &models.User{ID: 7, Username: "eve", Email: "eve@example.com"}

	token, err := other.Sign(user)
	require.NoError(t, err)

	_, err = issuer.Parse(token)
	require.Error(t, err)
}

func TestUserIDFromClaimsMissing(t *testing.T) {
	_, err := UserIDFromClaims(map[string]interface{}{"username": "x"})
	require.Error(t, err)
}
