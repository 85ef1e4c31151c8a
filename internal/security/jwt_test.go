package security

import (
	"GameLibraryAPI/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:    "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  "15m",
		RefreshTokenTTL: "168h",
		Issuer:          "test",
	}
}

func newTestJWTService(t *testing.T, cfg config.JWTConfig) *JWTService {
	t.Helper()

	jwtService, err := NewJWTService(cfg)
	require.NoError(t, err)
	return jwtService
}

// 1
func TestAccessToken_Roundtrip(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())

	token, err := jwtService.GenerateAccessToken("user-uuid")
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid", claims.UserUUID)
	assert.Equal(t, "user-uuid", claims.Subject)
}

// 2
func TestRefreshToken_Roundtrip(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())

	token, err := jwtService.GenerateRefreshToken("user-uuid")
	require.NoError(t, err)

	claims, err := jwtService.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-uuid", claims.UserUUID)
}

// 3
func TestValidate_WrongSecretClass(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())

	accessToken, err := jwtService.GenerateAccessToken("user-uuid")
	require.NoError(t, err)
	refreshToken, err := jwtService.GenerateRefreshToken("user-uuid")
	require.NoError(t, err)

	// access токен под refresh-секретом и наоборот — всегда невалидная
	// подпись, даже при неистекшем сроке
	_, err = jwtService.ValidateRefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = jwtService.ValidateAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

// 4
func TestValidate_Expired(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenTTL = "-1m"
	cfg.RefreshTokenTTL = "-1m"
	expiredService := newTestJWTService(t, cfg)

	accessToken, err := expiredService.GenerateAccessToken("user-uuid")
	require.NoError(t, err)
	refreshToken, err := expiredService.GenerateRefreshToken("user-uuid")
	require.NoError(t, err)

	// срок истек, но подпись верна: именно ErrTokenExpired, не ErrTokenInvalid
	_, err = expiredService.ValidateAccessToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)

	_, err = expiredService.ValidateRefreshToken(refreshToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

// 5
func TestValidate_Garbage(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())

	_, err := jwtService.ValidateAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = jwtService.ValidateRefreshToken("")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

// 6
func TestGenerateTokenPair(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())

	tokensPair, err := jwtService.GenerateTokenPair("user-uuid")
	require.NoError(t, err)
	assert.NotEmpty(t, tokensPair.AccessToken)
	assert.NotEmpty(t, tokensPair.RefreshToken)
	assert.NotEqual(t, tokensPair.AccessToken, tokensPair.RefreshToken)

	_, err = jwtService.ValidateAccessToken(tokensPair.AccessToken)
	assert.NoError(t, err)
	_, err = jwtService.ValidateRefreshToken(tokensPair.RefreshToken)
	assert.NoError(t, err)
}

// 7
func TestGenerateTokenPair_UniquePerIssue(t *testing.T) {
	jwtService := newTestJWTService(t, testJWTConfig())

	first, err := jwtService.GenerateTokenPair("user-uuid")
	require.NoError(t, err)
	second, err := jwtService.GenerateTokenPair("user-uuid")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
}

// 8
func TestNewJWTService_BadTTL(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenTTL = "fifteen minutes"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}
