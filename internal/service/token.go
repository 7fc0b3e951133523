// Package service provides application business logic (users, boards, lists, cards).
package service

import (
	"fmt"
	"time"

	"kanban/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenIssuer signs and parses the bearer tokens used as session
// credentials. Tokens carry no expiry; a login rotates the stored token
// and invalidates the previous one.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer returns a TokenIssuer signing with the given secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Sign issues a fresh HS256 token for the user. The jti claim makes
// every issued token unique even for the same user and instant.
func (t *TokenIssuer) Sign(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"iat":      time.Now().Unix(),
		"jti":      uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token signature and returns its claims.
func (t *TokenIssuer) Parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// UserIDFromClaims extracts the numeric user id claim.
func UserIDFromClaims(claims jwt.MapClaims) (uint, error) {
	raw, ok := claims["id"]
	if !ok {
		return 0, fmt.Errorf("token missing id claim")
	}
	// JSON numbers decode as float64.
	id, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("token id claim has unexpected type %T", raw)
	}
	return uint(id), nil
}
