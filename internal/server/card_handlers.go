package server

import (
	"kanban/internal/models"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) GetCards(c *fiber.Ctx) error {
	filter, err := queryFilter(c, map[string]filterParam{
		"list_id": {column: "list_id", kind: filterUint},
		"name":    {column: "name"},
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	cards, err := s.cardService.FindAll(c.UserContext(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(cards)
}

func (s *Server) GetCardCount(c *fiber.Ctx) error {
	count, err := s.cardService.Count(c.UserContext(), nil)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (s *Server) GetCard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	card, err := s.cardService.FindByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(card)
}

func (s *Server) CreateCard(c *fiber.Ctx) error {
	var card models.Card
	if err := c.BodyParser(&card); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	created, err := s.cardService.Create(c.UserContext(), &card)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) UpdateCard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var input models.Card
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	card, err := s.cardService.Update(c.UserContext(), id, &input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(card)
}

// PatchCard applies a partial update. When no row was changed the
// partial input is echoed back unchanged.
func (s *Server) PatchCard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	fields, err := parsePatchBody(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	card, updated, err := s.cardService.Patch(c.UserContext(), id, fields)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !updated {
		return c.JSON(fields)
	}
	return c.JSON(card)
}

func (s *Server) DeleteCard(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := s.cardService.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
