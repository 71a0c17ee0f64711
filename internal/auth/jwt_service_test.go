package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "maria@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, KindAccess, claims.Kind)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)

	got, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestJWTService_RefreshToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(uuid.New(), "a@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims.ID)

	access, err := svc.GenerateAccessToken(uuid.New(), "a@example.com")
	require.NoError(t, err)
	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err, "access tokens must not be accepted as refresh tokens")
}

func TestJWTService_RejectsForeignAndExpiredTokens(t *testing.T) {
	svc := NewJWTService("test-secret")
	other := NewJWTService("other-secret")

	token, err := other.GenerateAccessToken(uuid.New(), "a@example.com")
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	past := NewJWTService("test-secret")
	past.now = func() time.Time { return time.Now().Add(-time.Hour) }
	expired, err := past.GenerateAccessToken(uuid.New(), "a@example.com")
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestClaims_UserIDRejectsGarbage(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "42"}}
	_, err := c.UserID()
	assert.Error(t, err)
}

func TestTokenStore_WithoutRedis(t *testing.T) {
	ctx := context.Background()
	store := NewTokenStore(nil)

	require.NoError(t, store.StoreRefreshToken(ctx, "id", uuid.New(), "a@example.com", time.Minute))
	_, _, err := store.GetRefreshToken(ctx, "id")
	assert.ErrorIs(t, err, ErrTokenNotFound)

	blacklisted, err := store.IsAccessTokenBlacklisted(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, blacklisted)
}
