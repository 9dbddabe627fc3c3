package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/notewall/notewall-backend/internal/dto"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://notewall.app/errors/validation"
	ErrorTypeNotFound     = "https://notewall.app/errors/not-found"
	ErrorTypeUnauthorized = "https://notewall.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://notewall.app/errors/forbidden"
	ErrorTypeInternal     = "https://notewall.app/errors/internal"
)

// maxBodyBytes caps JSON request bodies read by the handlers
const maxBodyBytes = 64 << 10

func writeProblem(c echo.Context, status int, typ, title, detail string, fields []ValidationError) error {
	return c.JSON(status, ProblemDetails{
		Type:     typ,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   fields,
	})
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, fields []ValidationError) error {
	return writeProblem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", detail, fields)
}

// NewDecodeError turns a dto decode failure into a validation response
// listing every failing field
func NewDecodeError(c echo.Context, err error) error {
	var verrs *dto.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError(c, "Invalid request", nil)
	}
	fields := make([]ValidationError, len(verrs.Errors))
	for i, fe := range verrs.Errors {
		fields[i] = ValidationError{Field: fe.Field, Message: fe.Message}
	}
	return NewValidationError(c, "Validation failed", fields)
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return writeProblem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", detail, nil)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, detail string) error {
	return writeProblem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", detail, nil)
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return writeProblem(c, http.StatusForbidden, ErrorTypeForbidden, "Forbidden", detail, nil)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return writeProblem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", detail, nil)
}

// readBody returns the raw request body for the dto decoders
func readBody(c echo.Context) ([]byte, error) {
	return io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
}
