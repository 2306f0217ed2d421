package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fms/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-at-least-32-char",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "fms-test",
		MaxRefreshCount:        50,
	})
}

func TestGenerateTokenPair(t *testing.T) {
	service := newTestJWTService()

	input := GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Username: "alice",
	}

	pair, err := service.GenerateTokenPair(input)
	require.NoError(t, err)
	require.NotNil(t, pair)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	t.Run("access token carries session claims", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, input.TenantID.String(), claims.TenantID)
		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Equal(t, "alice", claims.Username)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("refresh token is bound to the user only", func(t *testing.T) {
		claims, err := service.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)

		assert.Equal(t, input.UserID.String(), claims.UserID)
		assert.Empty(t, claims.TenantID)
		assert.Empty(t, claims.Username)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
		assert.Equal(t, 0, claims.RefreshCount)
	})
}

func TestValidateAccessToken(t *testing.T) {
	service := newTestJWTService()

	input := GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Username: "alice",
	}

	pair, err := service.GenerateTokenPair(input)
	require.NoError(t, err)

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects refresh token as access token", func(t *testing.T) {
		_, err := service.ValidateAccessToken(pair.RefreshToken)
		assert.Error(t, err)
	})

	t.Run("rejects access token as refresh token", func(t *testing.T) {
		_, err := service.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "another-secret-entirely-32-chars-xx",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 7 * 24 * time.Hour,
			Issuer:                 "fms-test",
			MaxRefreshCount:        50,
		})
		otherPair, err := other.GenerateTokenPair(input)
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(otherPair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                 "test-access-secret-at-least-32-chars",
			RefreshSecret:          "test-refresh-secret-at-least-32-char",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: 7 * 24 * time.Hour,
			Issuer:                 "fms-test",
			MaxRefreshCount:        50,
		})
		expiredPair, err := expired.GenerateTokenPair(input)
		require.NoError(t, err)

		_, err = service.ValidateAccessToken(expiredPair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestGenerateAccessToken(t *testing.T) {
	service := newTestJWTService()

	tenantID := uuid.New()
	token, expiresAt, err := service.GenerateAccessToken(GenerateTokenInput{
		TenantID: tenantID,
		UserID:   uuid.New(),
		Username: "alice",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := service.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, tenantID.String(), claims.TenantID)
}

func TestRefreshTokenPair(t *testing.T) {
	service := newTestJWTService()

	userID := uuid.New()
	originalTenant := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		TenantID: originalTenant,
		UserID:   userID,
		Username: "alice",
	})
	require.NoError(t, err)

	t.Run("issues a fresh pair with re-resolved session state", func(t *testing.T) {
		newTenant := uuid.New()
		newPair, err := service.RefreshTokenPair(pair.RefreshToken, newTenant, "alice")
		require.NoError(t, err)

		claims, err := service.ValidateAccessToken(newPair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, newTenant.String(), claims.TenantID)
		assert.Equal(t, userID.String(), claims.UserID)

		refreshClaims, err := service.ValidateRefreshToken(newPair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, refreshClaims.RefreshCount)
	})

	t.Run("rejects an access token", func(t *testing.T) {
		_, err := service.RefreshTokenPair(pair.AccessToken, originalTenant, "alice")
		assert.Error(t, err)
	})

	t.Run("enforces max refresh count", func(t *testing.T) {
		limited := NewJWTService(config.JWTConfig{
			Secret:                 "test-access-secret-at-least-32-chars",
			RefreshSecret:          "test-refresh-secret-at-least-32-char",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: 7 * 24 * time.Hour,
			Issuer:                 "fms-test",
			MaxRefreshCount:        1,
		})

		p, err := limited.GenerateTokenPair(GenerateTokenInput{TenantID: originalTenant, UserID: userID, Username: "alice"})
		require.NoError(t, err)

		p, err = limited.RefreshTokenPair(p.RefreshToken, originalTenant, "alice")
		require.NoError(t, err)

		_, err = limited.RefreshTokenPair(p.RefreshToken, originalTenant, "alice")
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})
}
