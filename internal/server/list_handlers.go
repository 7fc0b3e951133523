package server

import (
	"kanban/internal/models"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) GetLists(c *fiber.Ctx) error {
	filter, err := queryFilter(c, map[string]filterParam{
		"board_id": {column: "board_id", kind: filterUint},
		"name":     {column: "name"},
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	lists, err := s.listService.FindAll(c.UserContext(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(lists)
}

func (s *Server) GetListCount(c *fiber.Ctx) error {
	count, err := s.listService.Count(c.UserContext(), nil)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (s *Server) GetList(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	list, err := s.listService.FindByID(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(list)
}

func (s *Server) CreateList(c *fiber.Ctx) error {
	var list models.List
	if err := c.BodyParser(&list); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	created, err := s.listService.Create(c.UserContext(), &list)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (s *Server) UpdateList(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var input models.List
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	list, err := s.listService.Update(c.UserContext(), id, &input)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(list)
}

// PatchList applies a partial update. When no row was changed the
// partial input is echoed back unchanged.
func (s *Server) PatchList(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	fields, err := parsePatchBody(c)
	if err != nil {
		return respondServiceError(c, err)
	}

	list, updated, err := s.listService.Patch(c.UserContext(), id, fields)
	if err != nil {
		return respondServiceError(c, err)
	}
	if !updated {
		return c.JSON(fields)
	}
	return c.JSON(list)
}

// DeleteList removes the list together with its cards.
func (s *Server) DeleteList(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	if err := s.listService.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
