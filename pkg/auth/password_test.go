package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_StoredForm(t *testing.T) {
	stored, err := HashPassword("Abc12345!")
	require.NoError(t, err)

	parts := strings.Split(stored, ":")
	require.Len(t, parts, 2)
	// 16-byte salt and 64-byte derived key, hex encoded.
	assert.Len(t, parts[0], 32)
	assert.Len(t, parts[1], 128)
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("Abc12345!")
	require.NoError(t, err)
	second, err := HashPassword("Abc12345!")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyPassword(t *testing.T) {
	stored, err := HashPassword("Abc12345!")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("Abc12345!", stored))
	assert.False(t, VerifyPassword("Abc12345?", stored))
	assert.False(t, VerifyPassword("", stored))
}

func TestVerifyPassword_MalformedStoredForm(t *testing.T) {
	assert.False(t, VerifyPassword("Abc12345!", "no-colon-here"))
	assert.False(t, VerifyPassword("Abc12345!", ""))
	assert.False(t, VerifyPassword("Abc12345!", "zz:zz"))
	assert.False(t, VerifyPassword("Abc12345!", "abcd:nothex!"))
}
