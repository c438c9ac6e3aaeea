package errors

import (
	"errors"
	"net/http"
)

// Common application errors shared across layers.
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation is returned for invalid input data.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized is returned for authentication failures.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks permission.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited is returned when an abuse-prevention gate rejects a request.
	ErrRateLimited = errors.New("rate limited")

	// ErrDatabase is returned when a storage dependency fails unexpectedly.
	ErrDatabase = errors.New("database error")

	// ErrInternal is returned for unexpected internal failures.
	ErrInternal = errors.New("internal server error")
)

// AppError is a domain error carrying the HTTP status it should map to
// plus optional per-field details for validation responses.
type AppError struct {
	Status  int
	Message string
	Details []string
	kind    error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match the error against its sentinel kind.
func (e *AppError) Unwrap() error {
	return e.kind
}

// NewValidation builds a 400 error, optionally with collected field violations.
func NewValidation(message string, details ...string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message, Details: details, kind: ErrValidation}
}

// NewNotFound builds a 404 error.
func NewNotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message, kind: ErrNotFound}
}

// NewUnauthorized builds a 401 error.
func NewUnauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message, kind: ErrUnauthorized}
}

// NewForbidden builds a 403 error.
func NewForbidden(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message, kind: ErrForbidden}
}

// NewRateLimit builds a 429 error for cooldown, spam-lock and failure-lock rejections.
func NewRateLimit(message string) *AppError {
	return &AppError{Status: http.StatusTooManyRequests, Message: message, kind: ErrRateLimited}
}

// NewDatabase builds a 500 error wrapping a storage failure.
func NewDatabase(message string) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: message, kind: ErrDatabase}
}

// NewInternal builds a generic 500 error. The message must not leak internals.
func NewInternal(message string) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Message: message, kind: ErrInternal}
}
