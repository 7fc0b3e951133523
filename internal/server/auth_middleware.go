package server

import (
	"strings"

	"kanban/internal/models"
	"kanban/internal/service"

	"github.com/gofiber/fiber/v2"
)

// entitySegment extracts the entity name from an API path, e.g.
// "/api/boards/3" yields "boards".
func entitySegment(path string) string {
	parts := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(parts) >= 2 && parts[0] == "api" {
		return parts[1]
	}
	return ""
}

// CredentialRequired resolves the bearer token against the stored token
// column. A missing header fails before any lookup. On success the user
// and the raw token are attached to request locals.
func (s *Server) CredentialRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Authorization required"))
		}

		tokenString := authHeader
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}

		user, err := s.userService.FindByToken(c.UserContext(), tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		if user == nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Invalid token"))
		}

		c.Locals("user", user)
		c.Locals("token", tokenString)
		c.Locals("userID", user.ID)
		return c.Next()
	}
}

// PermissionRequired independently verifies the JWT signature and
// confirms the id claim maps to an existing user. It runs after
// CredentialRequired; both checks must pass. Board-level roles are not
// consulted here.
func (s *Server) PermissionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, _ := c.Locals("token").(string)
		if tokenString == "" {
			authHeader := c.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				tokenString = parts[1]
			} else {
				tokenString = authHeader
			}
		}

		claims, err := s.issuer.Parse(tokenString)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Invalid or expired token"))
		}

		userID, err := service.UserIDFromClaims(claims)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthenticatedError("Invalid token claims"))
		}

		if _, err := s.userRepo.FindByID(c.UserContext(), userID); err != nil {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("You do not have permission to access this resource"))
		}

		c.Locals("entity", entitySegment(c.Path()))
		return c.Next()
	}
}
