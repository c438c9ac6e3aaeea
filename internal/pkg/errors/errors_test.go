package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_KindMatching(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		kind   error
		status int
	}{
		{"validation", NewValidation("bad input", "field a"), ErrValidation, http.StatusBadRequest},
		{"not found", NewNotFound("missing"), ErrNotFound, http.StatusNotFound},
		{"unauthorized", NewUnauthorized("no"), ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", NewForbidden("no"), ErrForbidden, http.StatusForbidden},
		{"rate limit", NewRateLimit("slow down"), ErrRateLimited, http.StatusTooManyRequests},
		{"database", NewDatabase("down"), ErrDatabase, http.StatusInternalServerError},
		{"internal", NewInternal("oops"), ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.kind))
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.err.Message, tt.err.Error())
		})
	}
}

func TestNewValidation_Details(t *testing.T) {
	err := NewValidation("Invalid registration data", "name too short", "email invalid")
	assert.Len(t, err.Details, 2)
}
