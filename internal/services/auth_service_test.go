// internal/services/auth_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitcart/orbitcart-backend/internal/apperrors"
	"github.com/orbitcart/orbitcart-backend/internal/models"
)

func otpUser(otp string, expiresAt time.Time, verified bool) *models.User {
	return &models.User{
		IsVerified:   verified,
		OTP:          &otp,
		OTPExpiresAt: &expiresAt,
	}
}

func TestCheckOTPSuccess(t *testing.T) {
	now := time.Now()
	user := otpUser("123456", now.Add(2*time.Minute), false)

	assert.NoError(t, checkOTP(user, "123456", now))
}

func TestCheckOTPAlreadyVerified(t *testing.T) {
	now := time.Now()
	user := otpUser("123456", now.Add(2*time.Minute), true)

	err := checkOTP(user, "123456", now)
	require.Error(t, err)

	appErr := apperrors.From(err)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestCheckOTPExpired(t *testing.T) {
	now := time.Now()
	user := otpUser("123456", now.Add(-time.Minute), false)

	err := checkOTP(user, "123456", now)
	require.Error(t, err)

	appErr := apperrors.From(err)
	assert.Equal(t, 401, appErr.StatusCode)
	assert.Equal(t, "Invalid or expired OTP", appErr.Message)
}

func TestCheckOTPMismatch(t *testing.T) {
	now := time.Now()
	user := otpUser("123456", now.Add(2*time.Minute), false)

	err := checkOTP(user, "654321", now)
	require.Error(t, err)

	appErr := apperrors.From(err)
	assert.Equal(t, 401, appErr.StatusCode)
	assert.Equal(t, "Invalid OTP", appErr.Message)
}

func TestCheckOTPMissing(t *testing.T) {
	now := time.Now()
	user := &models.User{}

	// No OTP stored at all reads as expired.
	err := checkOTP(user, "123456", now)
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired OTP", apperrors.From(err).Message)
}
