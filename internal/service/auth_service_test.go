package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"quizbook/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecretkeydontuseinproduction32bytes!"

func newTestAuthService(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()
	svc, err := NewAuthService(config.JWTConfig{SecretKey: testSecret, AccessTokenTTL: ttl}, config.GoogleOAuthConfig{
		ClientID:    "client",
		RedirectURL: "http://localhost:8090/api/auth/google/callback",
	})
	require.NoError(t, err)
	return svc
}

func TestAuthService_JWTRoundTrip(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	token, err := svc.CreateJWT("Admin@Example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, time.Hour, svc.AccessTokenTTL())
}

func TestAuthService_ValidateJWT_Rejects(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)
	ctx := context.Background()

	_, err := svc.ValidateJWT(ctx, "not-a-token")
	assert.True(t, errors.Is(err, ErrInvalidJWTToken))

	other, err := NewAuthService(config.JWTConfig{SecretKey: "another-secret-that-is-32-bytes-long!!", AccessTokenTTL: time.Hour}, config.GoogleOAuthConfig{})
	require.NoError(t, err)
	foreign, err := other.CreateJWT("admin@example.com")
	require.NoError(t, err)
	_, err = svc.ValidateJWT(ctx, foreign)
	assert.True(t, errors.Is(err, ErrInvalidJWTToken))

	expired := &authServiceImpl{jwtCfg: config.JWTConfig{SecretKey: testSecret, AccessTokenTTL: -time.Minute}}
	stale, err := expired.CreateJWT("admin@example.com")
	require.NoError(t, err)
	_, err = svc.ValidateJWT(ctx, stale)
	assert.True(t, errors.Is(err, ErrInvalidJWTToken))
}

func TestAuthService_ShortSecret(t *testing.T) {
	_, err := NewAuthService(config.JWTConfig{SecretKey: "short"}, config.GoogleOAuthConfig{})
	assert.Error(t, err)
}

func TestAuthService_GoogleFlow(t *testing.T) {
	svc := newTestAuthService(t, time.Hour)

	url := svc.GetGoogleLoginURL("state-123")
	assert.Contains(t, url, "state=state-123")
	assert.Contains(t, url, "client_id=client")

	_, _, err := svc.HandleGoogleCallback(context.Background(), "code", "state-a", "state-b")
	assert.ErrorIs(t, err, ErrInvalidAuthState)

	_, _, err = svc.HandleGoogleCallback(context.Background(), "code", "", "")
	assert.ErrorIs(t, err, ErrInvalidAuthState)
}
