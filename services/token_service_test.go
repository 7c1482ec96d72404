package services_test

import (
	"testing"
	"time"
	"topup-store/services"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := services.NewTokenService("test-secret", time.Hour)

	token, err := svc.Generate("user-1", "user@example.com", "admin")
	assert.NoError(t, err)

	claims, err := svc.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "admin", claims["role"])
}

func TestTokenValidate_RejectsBadTokens(t *testing.T) {
	svc := services.NewTokenService("test-secret", time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.Error(t, err)

	// Signed with another secret.
	other := services.NewTokenService("other-secret", time.Hour)
	token, genErr := other.Generate("user-1", "user@example.com", "user")
	assert.NoError(t, genErr)
	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestTokenValidate_RejectsExpired(t *testing.T) {
	svc := services.NewTokenService("test-secret", -time.Minute)

	token, err := svc.Generate("user-1", "user@example.com", "user")
	assert.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}
