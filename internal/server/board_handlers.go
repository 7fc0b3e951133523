package server

import (
	"kanban/internal/models"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) GetBoards(c *fiber.Ctx) error {
	filter, err := queryFilter(c, map[string]filterParam{
		"user_id": {column: "created_by", kind: filterUint},
		"name":    {column: "name"},
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	boards, err := s.boardService.FindAll(c.UserContext(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(boards)
}

func (s *Server) GetBoardCount(c *fiber.Ctx) error {
	count, err := s.boardService.Count(c.UserContext(), nil)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (s *Server) GetBoard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	board, err := s.boardService.FindByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(board)
}

// CreateBoard creates a board owned by the authenticated user.
func (s *Server) CreateBoard(c *fiber.Ctx) error {
	var board models.Board
	if err := c.BodyParser(&board); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	creatorID, _ := c.Locals("userID").(uint)
	created, err := s.boardService.Create(c.UserContext(), &board, creatorID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) UpdateBoard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var input models.Board
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	board, err := s.boardService.Update(c.UserContext(), id, &input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(board)
}

// PatchBoard applies a partial update. When no row was changed the
// partial input is echoed back unchanged.
func (s *Server) PatchBoard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	fields, err := parsePatchBody(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	board, updated, err := s.boardService.Patch(c.UserContext(), id, fields)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !updated {
		return c.JSON(fields)
	}
	return c.JSON(board)
}

// DeleteBoard removes the board with its memberships, lists, and cards.
func (s *Server) DeleteBoard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := s.boardService.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
