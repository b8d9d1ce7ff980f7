package auth

import (
	"testing"
	"time"

	"github.com/qrizan/cms-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJWTConfig(t *testing.T) {
	t.Helper()

	config.GlobalConfig = &config.Config{
		JWT: config.JWTConfig{
			SecretKey:     "test-secret",
			ExpireSeconds: 3600,
			Issuer:        "cms-api-test",
		},
	}
	// 每个测试使用干净的黑名单
	SetBlacklist(NewMemoryBlacklist())
}

func TestGenerateAndParseToken(t *testing.T) {
	setupJWTConfig(t)

	token, err := GenerateToken(42, "Alice", "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "cms-api-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenIDsUnique(t *testing.T) {
	setupJWTConfig(t)

	first, err := GenerateToken(1, "a", "a@example.com")
	require.NoError(t, err)
	second, err := GenerateToken(1, "a", "a@example.com")
	require.NoError(t, err)

	firstClaims, err := ParseToken(first)
	require.NoError(t, err)
	secondClaims, err := ParseToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestParseTamperedToken(t *testing.T) {
	setupJWTConfig(t)

	token, err := GenerateToken(42, "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	setupJWTConfig(t)

	token, err := GenerateToken(42, "Alice", "alice@example.com")
	require.NoError(t, err)

	require.NoError(t, RevokeToken(token))

	_, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestMemoryBlacklistExpiry(t *testing.T) {
	b := NewMemoryBlacklist()

	require.NoError(t, b.Add("expired", time.Now().Add(-time.Minute)))
	assert.False(t, b.Has("expired"))

	require.NoError(t, b.Add("active", time.Now().Add(time.Minute)))
	assert.True(t, b.Has("active"))
	assert.False(t, b.Has("unknown"))
}
