package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hiresift/hiresift-backend/internal/config"
)

func testAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(&config.Config{
		JWTSecret:         "test-secret",
		JWTExpiry:         time.Hour,
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
	})
}

func TestLoginAndValidate(t *testing.T) {
	svc := testAuthService(t)

	token, err := svc.Login("admin", "correct-horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Subject)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("root", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWithoutConfiguredHash(t *testing.T) {
	svc := NewAuthService(&config.Config{AdminUsername: "admin"})

	_, err := svc.Login("admin", "anything")
	assert.ErrorIs(t, err, ErrNoAdminConfigured)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	svc := testAuthService(t)

	token, err := svc.Login("admin", "correct-horse")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)

	other := NewAuthService(&config.Config{JWTSecret: "other-secret", JWTExpiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}
