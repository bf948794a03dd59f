package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError. Handlers map these to HTTP statuses.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is a domain error produced by repositories and services. Field is
// the JSON key the client sees (e.g. "message", "noProfile", "handle").
type AppError struct {
	Code    string
	Field   string
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

// NewNotFoundError returns a 404-class error rendered as {"message": ...}.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Field: "message", Message: message}
}

// NewNotFoundFieldError returns a 404-class error under a custom key,
// e.g. {"noProfile": ...} or {"profile": ...}.
func NewNotFoundFieldError(field, message string) *AppError {
	return &AppError{Code: CodeNotFound, Field: field, Message: message}
}

// NewValidationError returns a 400-class error rendered as {"message": ...}.
func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Field: "message", Message: message}
}

// NewConflictError returns a 400-class uniqueness conflict keyed by the
// offending field, e.g. {"email": "Email already exists"}.
func NewConflictError(field, message string) *AppError {
	return &AppError{Code: CodeConflict, Field: field, Message: message}
}

// NewUnauthorizedError returns a 401-class error rendered as
// {"authorization": ...}.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Field: "authorization", Message: message}
}

// NewInternalError wraps an unexpected failure. The underlying error is
// logged but never serialized to the client.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Field: "message", Message: "Internal server error", Err: err}
}

// FieldErrors maps request field names to validation messages.
type FieldErrors map[string]string

// RespondWithError writes a standardized single-key error response.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	if appErr, ok := err.(*AppError); ok {
		field := appErr.Field
		if field == "" {
			field = "message"
		}
		return c.Status(status).JSON(fiber.Map{field: appErr.Message})
	}
	return c.Status(status).JSON(fiber.Map{"message": err.Error()})
}

// RespondWithFieldErrors writes a validation error map as the response body.
func RespondWithFieldErrors(c *fiber.Ctx, errs FieldErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(errs)
}
