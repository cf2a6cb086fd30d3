package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345"

func TestHashPassword(t *testing.T) {
	t.Run("Successfully hash password", func(t *testing.T) {
		password := "mySecurePassword123"
		hashed, err := HashPassword(password)

		assert.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, password, hashed)
	})

	t.Run("Different hashes for same password", func(t *testing.T) {
		password := "samePassword"
		hash1, _ := HashPassword(password)
		hash2, _ := HashPassword(password)

		// bcrypt salts every hash
		assert.NotEqual(t, hash1, hash2)
	})
}

func TestCheckPassword(t *testing.T) {
	password := "correctPassword"
	hashed, _ := HashPassword(password)

	t.Run("Correct password", func(t *testing.T) {
		assert.True(t, CheckPassword(hashed, password))
	})

	t.Run("Incorrect password", func(t *testing.T) {
		assert.False(t, CheckPassword(hashed, "wrongPassword"))
	})

	t.Run("Empty password", func(t *testing.T) {
		assert.False(t, CheckPassword(hashed, ""))
	})
}

func TestGenerateSessionToken(t *testing.T) {
	t.Run("Successfully generate token", func(t *testing.T) {
		token, err := GenerateSessionToken(1, "admin@plumbdesk.co.uk", testSecret)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Fail with empty secret", func(t *testing.T) {
		token, err := GenerateSessionToken(1, "admin@plumbdesk.co.uk", "")

		assert.Error(t, err)
		assert.Equal(t, ErrEmptyJWTSecret, err)
		assert.Empty(t, token)
	})

	t.Run("Token contains correct claims", func(t *testing.T) {
		token, err := GenerateSessionToken(42, "office@plumbdesk.co.uk", testSecret)
		require.NoError(t, err)

		claims, err := ValidateSessionToken(token, testSecret)
		require.NoError(t, err)

		assert.Equal(t, 42, claims.AdminID)
		assert.Equal(t, "office@plumbdesk.co.uk", claims.Email)
	})
}

func TestValidateSessionToken(t *testing.T) {
	t.Run("Reject token signed with different secret", func(t *testing.T) {
		token, err := GenerateSessionToken(1, "admin@plumbdesk.co.uk", testSecret)
		require.NoError(t, err)

		claims, err := ValidateSessionToken(token, "other-secret")
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Reject garbage token", func(t *testing.T) {
		claims, err := ValidateSessionToken("not.a.jwt", testSecret)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Reject empty secret", func(t *testing.T) {
		claims, err := ValidateSessionToken("anything", "")
		assert.Equal(t, ErrEmptyJWTSecret, err)
		assert.Nil(t, claims)
	})
}
