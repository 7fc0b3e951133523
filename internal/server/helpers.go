package server

import (
	"strconv"

	"kanban/internal/models"
	"kanban/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// parseIDParam reads the :id path parameter as an unsigned integer.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid " + name + " parameter")
	}
	return uint(id), nil
}

// parseIDQuery reads a query parameter as an unsigned integer.
func parseIDQuery(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, models.NewValidationError("Missing " + name + " query parameter")
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid " + name + " query parameter")
	}
	return uint(id), nil
}

type filterKind int

const (
	filterString filterKind = iota
	filterUint
	filterBool
)

// filterParam maps a query parameter onto a column together with the
// conversion its value needs before being bound.
type filterParam struct {
	column string
	kind   filterKind
}

// queryFilter builds an equality filter from the listed query
// parameters. Values for numeric and boolean columns are converted
// first so they are never compared as raw strings. Absent parameters
// are skipped.
func queryFilter(c *fiber.Ctx, params map[string]filterParam) (repository.Filter, error) {
	filter := repository.Filter{}
	for param, p := range params {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		switch p.kind {
		case filterUint:
			v, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, models.NewValidationError("Invalid " + param + " query parameter")
			}
			filter[p.column] = uint(v)
		case filterBool:
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, models.NewValidationError("Invalid " + param + " query parameter")
			}
			filter[p.column] = v
		default:
			filter[p.column] = raw
		}
	}
	return filter, nil
}

// parsePatchBody decodes a PATCH body into the loose field map the
// repository layer expects.
func parsePatchBody(c *fiber.Ctx) (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if err := c.BodyParser(&fields); err != nil {
		return nil, models.NewValidationError("Invalid request body")
	}
	if len(fields) == 0 {
		return nil, models.NewValidationError("Request body must not be empty")
	}
	return fields, nil
}
