package token

import (
	"testing"
	"time"

	"github.com/changhyeonkim/ambient-toolbox/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager(&config.Config{
		App: config.AppConfig{Name: "ambient-toolbox-api-test"},
		JWT: config.JWTConfig{
			Secret:        "test-jwt-secret-key-must-be-at-least-32-characters-long",
			Expiry:        time.Hour,
			RefreshExpiry: 24 * time.Hour,
		},
	})
}

func TestValidateTokenOfType(t *testing.T) {
	m := newTestManager()

	access, err := m.GenerateAccessToken("3", "user@example.com")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("3", "user@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateTokenOfType(access, ACCESS)
	require.NoError(t, err)
	assert.Equal(t, "3", claims.MemberID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "3", claims.Subject)

	claims, err = m.ValidateTokenOfType(refresh, REFRESH)
	require.NoError(t, err)
	assert.Equal(t, REFRESH, claims.TokenType)

	_, err = m.ValidateTokenOfType(refresh, ACCESS)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestValidateToken_Rejects(t *testing.T) {
	m := newTestManager()
	access, err := m.GenerateAccessToken("3", "user@example.com")
	require.NoError(t, err)

	t.Run("Expired", func(t *testing.T) {
		expired := newTestManager()
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		stale, err := expired.GenerateAccessToken("3", "user@example.com")
		require.NoError(t, err)

		_, err = m.ValidateToken(stale)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("Other issuer", func(t *testing.T) {
		other := newTestManager()
		other.issuer = "someone-else"

		_, err := other.ValidateToken(access)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Other secret", func(t *testing.T) {
		other := newTestManager()
		other.secret = []byte("another-secret-another-secret-another-secret")

		_, err := other.ValidateToken(access)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
