package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the envelope returned for every handled error.
type ErrorResponse struct {
	OK         bool   `json:"ok"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// AppError is a custom application error carrying an HTTP status and a
// machine-readable code.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports a lookup miss for the given resource and id.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Status:  fiber.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

// NewUnauthenticatedError reports a missing or invalid credential.
func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusUnauthorized,
		Code:    "UNAUTHENTICATED",
		Message: message,
	}
}

// NewForbiddenError reports a valid credential with insufficient
// permission.
func NewForbiddenError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  fiber.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError writes the standard error envelope with the given
// status. The raw error message is exposed in the envelope for
// compatibility with existing clients.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(ErrorResponse{
		OK:         false,
		StatusCode: status,
		Message:    err.Error(),
	})
}
