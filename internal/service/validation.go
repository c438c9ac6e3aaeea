package service

import (
	"regexp"
	"strings"
	"unicode"

	apperrors "github.com/yourusername/auth-api/internal/pkg/errors"
)

// RegistrationInput is a normalized, validated registration payload.
// Email is trimmed and lower-cased; it is the identity key for all OTP state.
type RegistrationInput struct {
	Name     string
	Email    string
	Password string
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateRegistrationInput checks the payload and returns the normalized
// record. All violations are collected and returned together, never just the
// first one.
func ValidateRegistrationInput(name, email, password string) (*RegistrationInput, error) {
	var violations []string

	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) < 2 || len(trimmedName) > 60 {
		violations = append(violations, "name must be between 2 and 60 characters")
	}

	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(normalizedEmail) {
		violations = append(violations, "email must be a valid email address")
	}

	violations = append(violations, passwordViolations(password)...)

	if len(violations) > 0 {
		return nil, apperrors.NewValidation("Invalid registration data", violations...)
	}

	return &RegistrationInput{
		Name:     trimmedName,
		Email:    normalizedEmail,
		Password: password,
	}, nil
}

func passwordViolations(password string) []string {
	var violations []string
	if len(password) < 8 || len(password) > 64 {
		violations = append(violations, "password must be between 8 and 64 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}
	if !hasUpper {
		violations = append(violations, "password must include at least one uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "password must include at least one lowercase letter")
	}
	if !hasDigit {
		violations = append(violations, "password must include at least one number")
	}
	if !hasSpecial {
		violations = append(violations, "password must include at least one special character")
	}
	return violations
}
