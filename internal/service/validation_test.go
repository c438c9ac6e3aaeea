package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
)

func TestValidateRegistrationInput_Valid(t *testing.T) {
	input, err := ValidateRegistrationInput("  John Doe ", " New@Example.COM ", "Abc12345!")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", input.Name)
	assert.Equal(t, "new@example.com", input.Email)
	assert.Equal(t, "Abc12345!", input.Password)
}

func TestValidateRegistrationInput_WeakPassword(t *testing.T) {
	_, err := ValidateRegistrationInput("John", "john@example.com", "abc")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	// length, uppercase, digit, special character
	assert.GreaterOrEqual(t, len(appErr.Details), 4)
}

func TestValidateRegistrationInput_CollectsAllViolations(t *testing.T) {
	_, err := ValidateRegistrationInput("J", "not-an-email", "short")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Details, "name must be between 2 and 60 characters")
	assert.Contains(t, appErr.Details, "email must be a valid email address")
	assert.GreaterOrEqual(t, len(appErr.Details), 3)
}

func TestValidateRegistrationInput_Table(t *testing.T) {
	tests := []struct {
		name     string
		inName   string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "Alice", "alice@example.com", "Str0ng!pass", false},
		{"name too short", "A", "alice@example.com", "Str0ng!pass", true},
		{"name too long", strings.Repeat("a", 61), "alice@example.com", "Str0ng!pass", true},
		{"name at max", strings.Repeat("a", 60), "alice@example.com", "Str0ng!pass", false},
		{"email missing tld", "Alice", "alice@example", "Str0ng!pass", true},
		{"email with spaces", "Alice", "ali ce@example.com", "Str0ng!pass", true},
		{"password no upper", "Alice", "alice@example.com", "str0ng!pass", true},
		{"password no lower", "Alice", "alice@example.com", "STR0NG!PASS", true},
		{"password no digit", "Alice", "alice@example.com", "Strong!pass", true},
		{"password no special", "Alice", "alice@example.com", "Str0ngpass", true},
		{"password too long", "Alice", "alice@example.com", "Aa1!" + strings.Repeat("x", 61), true},
		{"password at min length", "Alice", "alice@example.com", "Abc1234!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRegistrationInput(tt.inName, tt.email, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
