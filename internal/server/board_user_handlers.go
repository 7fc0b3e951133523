package server

import (
	"kanban/internal/models"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) GetBoardUsers(c *fiber.Ctx) error {
	filter, err := queryFilter(c, map[string]filterParam{
		"board_id": {column: "board_id", kind: filterUint},
		"user_id":  {column: "user_id", kind: filterUint},
		"role":     {column: "role"},
		"starred":  {column: "starred", kind: filterBool},
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	memberships, err := s.boardUserService.FindAll(c.UserContext(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(memberships)
}

func (s *Server) GetBoardUserCount(c *fiber.Ctx) error {
	count, err := s.boardUserService.Count(c.UserContext(), nil)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// GetBoardUser fetches a single membership by its composite key, passed
// as board_id and user_id query parameters.
func (s *Server) GetBoardUser(c *fiber.Ctx) error {
	boardID, err := parseIDQuery(c, "board_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	userID, err := parseIDQuery(c, "user_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	membership, err := s.boardUserService.Find(c.UserContext(), boardID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(membership)
}

func (s *Server) CreateBoardUser(c *fiber.Ctx) error {
	var membership models.BoardUser
	if err := c.BodyParser(&membership); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	created, err := s.boardUserService.Create(c.UserContext(), &membership)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) UpdateBoardUser(c *fiber.Ctx) error {
	boardID, err := parseIDQuery(c, "board_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	userID, err := parseIDQuery(c, "user_id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var input models.BoardUser
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	membership, err := s.boardUserService.Update(c.UserContext(), boardID, userID, &input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(membership)
}

// PatchBoardUser applies a partial update addressed by the composite
// key. When no row was changed the partial input is echoed back
// unchanged.
func (s *Server) PatchBoardUser(c *fiber.Ctx) error {
	boardID, err := parseIDQuery(c, "board_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	userID, err := parseIDQuery(c, "user_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	fields, err := parsePatchBody(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	membership, updated, err := s.boardUserService.Patch(c.UserContext(), boardID, userID, fields)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !updated {
		return c.JSON(fields)
	}
	return c.JSON(membership)
}

func (s *Server) DeleteBoardUser(c *fiber.Ctx) error {
	boardID, err := parseIDQuery(c, "board_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	userID, err := parseIDQuery(c, "user_id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := s.boardUserService.Delete(c.UserContext(), boardID, userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
