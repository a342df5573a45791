package users

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secreta123")
	require.NoError(t, err)

	assert.NotEqual(t, "secreta123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "expected bcrypt hash, got %q", hash)
	assert.NotContains(t, hash, "secreta123")

	// Dos hashes de la misma contraseña difieren por el salt
	again, err := HashPassword("secreta123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secreta123")
	require.NoError(t, err)

	assert.True(t, CheckPassword("secreta123", hash))
	assert.False(t, CheckPassword("otra", hash))
	assert.False(t, CheckPassword("secreta123", "no-es-un-hash"))
}
