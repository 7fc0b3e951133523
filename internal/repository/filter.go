// Package repository implements the data access layer for the application.
package repository

import (
	"fmt"

	"kanban/internal/models"
)

// Filter is an equality filter keyed by column name. All provided keys
// are ANDed together; an empty filter matches all rows.
type Filter map[string]interface{}

// buildWhere validates filter keys against the entity's filterable
// columns and returns a map suitable for a parameterized WHERE clause.
// Values are always bound as parameters, never interpolated.
func buildWhere(filter Filter, allowed map[string]bool) (map[string]interface{}, error) {
	if len(filter) == 0 {
		return nil, nil
	}
	where := make(map[string]interface{}, len(filter))
	for column, value := range filter {
		if !allowed[column] {
			return nil, models.NewValidationError(fmt.Sprintf("unknown filter field %q", column))
		}
		where[column] = value
	}
	return where, nil
}

// pickFields validates patch input against the entity's mutable columns
// and drops anything else, so a PATCH body can never touch primary keys
// or unknown columns.
func pickFields(fields map[string]interface{}, allowed map[string]bool) (map[string]interface{}, error) {
	picked := make(map[string]interface{}, len(fields))
	for column, value := range fields {
		if !allowed[column] {
			continue
		}
		picked[column] = value
	}
	if len(picked) == 0 {
		return nil, models.NewValidationError("no updatable fields supplied")
	}
	return picked, nil
}
