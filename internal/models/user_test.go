// internal/models/user_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndCheckPassword(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("s3cret-pass"))

	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("s3cret-pass"))
	assert.Error(t, user.CheckPassword("wrong-pass"))
}

func TestOTPExpired(t *testing.T) {
	now := time.Now()

	future := now.Add(time.Minute)
	past := now.Add(-time.Minute)

	assert.False(t, (&User{OTPExpiresAt: &future}).OTPExpired(now))
	assert.True(t, (&User{OTPExpiresAt: &past}).OTPExpired(now))
	assert.True(t, (&User{}).OTPExpired(now))
}

func TestOTPMatches(t *testing.T) {
	otp := "123456"
	user := &User{OTP: &otp}

	assert.True(t, user.OTPMatches("123456"))
	assert.False(t, user.OTPMatches("654321"))
	assert.False(t, (&User{}).OTPMatches("123456"))
}
