package auth

import (
	"context"
	"testing"
	"time"

	"ecohub/internal/config"
	"ecohub/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{ID: "u-1", Username: "alice", Role: models.RoleAdmin}
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager(&config.JWTConfig{Secret: "s3cret", TTL: time.Hour})
	require.NoError(t, err)

	token, exp, err := m.GenerateToken(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenRejected(t *testing.T) {
	m, _ := NewTokenManager(&config.JWTConfig{Secret: "s3cret", TTL: time.Hour})
	other, _ := NewTokenManager(&config.JWTConfig{Secret: "other", TTL: time.Hour})
	expired, _ := NewTokenManager(&config.JWTConfig{Secret: "s3cret"})
	expired.ttl = -time.Minute

	foreign, _, err := other.GenerateToken(testUser())
	require.NoError(t, err)
	_, err = m.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	old, _, err := expired.GenerateToken(testUser())
	require.NoError(t, err)
	_, err = m.ValidateToken(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager(&config.JWTConfig{})
	assert.Error(t, err)
}

func TestMemoryDenylist(t *testing.T) {
	ctx := context.Background()
	d := NewMemoryDenylist()

	require.NoError(t, d.Revoke(ctx, "a", time.Now().Add(time.Minute)))
	require.NoError(t, d.Revoke(ctx, "b", time.Now().Add(-time.Minute)))

	revoked, err := d.IsRevoked(ctx, "a")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, _ = d.IsRevoked(ctx, "b")
	assert.False(t, revoked)
}

func TestRedisDenylist(t *testing.T) {
	mr := miniredis.RunT(t)
	d := NewRedisDenylistFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer d.Close()
	ctx := context.Background()

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))
	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestNewRedisDenylistDisabled(t *testing.T) {
	d, err := NewRedisDenylist(context.Background(), &config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, d)
}
