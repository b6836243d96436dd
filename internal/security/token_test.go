package security

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-0123456789abcdef-padding"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	userID := uuid.New()

	token, err := tm.GenerateSessionToken(userID, "test@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestTokenManager_ValidateToken(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)

	t.Run("Garbage token", func(t *testing.T) {
		_, err := tm.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewTokenManager("another-secret-0123456789abcdef-padding", time.Hour)
		token, err := other.GenerateSessionToken(uuid.New(), "test@example.com")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Expired token", func(t *testing.T) {
		expired := NewTokenManager(testSecret, -time.Minute)
		token, err := expired.GenerateSessionToken(uuid.New(), "test@example.com")
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
