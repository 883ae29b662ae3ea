package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Success(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret1", hash)

	// Hash must verify against the original password
	assert.NoError(t, ComparePassword(hash, "secret1"))
}

func TestHashPassword_Empty(t *testing.T) {
	hash, err := HashPassword("")
	assert.Error(t, err)
	assert.Empty(t, hash)
}

func TestHashPassword_UsesConfiguredCost(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, BcryptCost, cost)
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("secret1")
	require.NoError(t, err)
	second, err := HashPassword("secret1")
	require.NoError(t, err)

	// bcrypt salts every hash, so two hashes of the same input differ
	assert.NotEqual(t, first, second)
}

func TestComparePassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.Error(t, ComparePassword(hash, "wrong"))
	assert.Error(t, ComparePassword(hash, ""))
	assert.Error(t, ComparePassword("not-a-hash", "secret1"))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword(""))
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
	assert.NoError(t, ValidatePassword("secret1"))
	assert.Error(t, ValidatePassword(strings.Repeat("a", MaxPasswordLen+1)))
}
