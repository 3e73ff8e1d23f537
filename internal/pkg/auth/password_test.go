package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Secret123", hash)

	assert.True(t, CheckPassword(hash, "Secret123"))
	assert.False(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordProducesUniqueHashes(t *testing.T) {
	h1, err := HashPassword("Secret123")
	require.NoError(t, err)
	h2, err := HashPassword("Secret123")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, h1, h2)
}
