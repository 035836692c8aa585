// Package errors translates service-layer errors into HTTP responses.
package errors

import (
	stderrors "errors"
	"log"
	"net/http"

	"github.com/civicline/repcall/pkg/domain"
	"github.com/civicline/repcall/pkg/models"
	"github.com/labstack/echo/v4"
)

// ValidationError returns a 400 with the validation message. Validation
// messages are written for callers and safe to expose.
func ValidationError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: messageOf(err, "Invalid request data. Please check your input and try again."),
	})
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context, err error) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: messageOf(err, "The requested resource was not found."),
	})
}

// ConflictError returns a conflict error with its message
func ConflictError(c echo.Context, err error) error {
	return c.JSON(http.StatusConflict, models.ErrorResponse{
		Error:   "conflict",
		Message: messageOf(err, "The request conflicts with existing data."),
	})
}

// DatabaseError returns a generic database error without exposing internal details
func DatabaseError(c echo.Context, err error) error {
	log.Printf("[DATABASE ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "database_error",
		Message: "A database error occurred. Please try again later.",
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

// UnauthorizedError returns a generic unauthorized error
func UnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: "You are not authorized to access this resource.",
	})
}

// FromDomain maps a service error onto the matching HTTP response.
func FromDomain(c echo.Context, err error) error {
	switch {
	case domain.IsValidation(err):
		return ValidationError(c, err)
	case domain.IsNotFound(err):
		return NotFoundError(c, err)
	case domain.IsConflict(err):
		return ConflictError(c, err)
	case domain.IsPersistence(err):
		return DatabaseError(c, err)
	}
	return InternalError(c, err)
}

func messageOf(err error, fallback string) string {
	var derr *domain.DomainError
	if stderrors.As(err, &derr) && derr.Message != "" {
		return derr.Message
	}
	return fallback
}
