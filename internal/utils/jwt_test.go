// internal/utils/jwt_test.go
package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	SetJWTSecrets("test-access-secret", "test-refresh-secret")

	userID := uuid.New()
	token, err := GenerateAccessToken(userID, "Test User", "test@example.com", "admin", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "Test User", claims.Name)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	SetJWTSecrets("test-access-secret", "test-refresh-secret")

	userID := uuid.New()
	token, err := GenerateRefreshToken(userID, "Test User", "test@example.com", "user", 24)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "test@example.com", claims.Email)
}

// Access tokens must not pass refresh validation; the secrets differ.
func TestAccessTokenRejectedAsRefreshToken(t *testing.T) {
	SetJWTSecrets("test-access-secret", "test-refresh-secret")

	token, err := GenerateAccessToken(uuid.New(), "Test User", "test@example.com", "user", 1)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	SetJWTSecrets("test-access-secret", "test-refresh-secret")

	_, err := ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
