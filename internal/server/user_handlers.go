package server

import (
	"kanban/internal/models"
	"kanban/internal/service"

	"github.com/gofiber/fiber/v2"
)

func respondServiceError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); ok {
		return models.RespondWithError(c, appErr.Status, appErr)
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// Register creates a new account and returns the user with a freshly
// issued session token.
func (s *Server) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login verifies credentials and rotates the session token.
func (s *Server) Login(c *fiber.Ctx) error {
	var in service.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Login(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// ChangePassword overwrites the user's password.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.userService.ChangePassword(c.UserContext(), id, body.Password); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

func (s *Server) GetUsers(c *fiber.Ctx) error {
	filter, err := queryFilter(c, map[string]filterParam{
		"username": {column: "username"},
		"email":    {column: "email"},
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	users, err := s.userService.FindAll(c.UserContext(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(users)
}

func (s *Server) GetUserCount(c *fiber.Ctx) error {
	count, err := s.userService.Count(c.UserContext(), nil)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	user, err := s.userService.FindByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// CreateUser goes through the same validation and token issuance as
// Register.
func (s *Server) CreateUser(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	user, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Update(c.UserContext(), id, body.Username, body.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// PatchUser applies a partial update. When no row was changed the
// partial input is echoed back unchanged.
func (s *Server) PatchUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	fields, err := parsePatchBody(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	user, updated, err := s.userService.Patch(c.UserContext(), id, fields)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !updated {
		return c.JSON(fields)
	}
	return c.JSON(user)
}

func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := s.userService.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
