package auth

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisBlacklist(t *testing.T) (*RedisBlacklist, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisBlacklist(client), mr
}

func TestRedisBlacklistAddAndHas(t *testing.T) {
	b, _ := setupRedisBlacklist(t)

	require.NoError(t, b.Add("token-1", time.Now().Add(time.Hour)))
	assert.True(t, b.Has("token-1"))
	assert.False(t, b.Has("token-2"))
}

func TestRedisBlacklistExpiredTokenSkipped(t *testing.T) {
	b, _ := setupRedisBlacklist(t)

	// 已过期的令牌不需要写入
	require.NoError(t, b.Add("stale", time.Now().Add(-time.Minute)))
	assert.False(t, b.Has("stale"))
}

func TestRedisBlacklistEntryExpires(t *testing.T) {
	b, mr := setupRedisBlacklist(t)

	require.NoError(t, b.Add("token-1", time.Now().Add(time.Minute)))
	assert.True(t, b.Has("token-1"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, b.Has("token-1"))
}

func TestRedisBlacklistFailOpen(t *testing.T) {
	b, mr := setupRedisBlacklist(t)

	require.NoError(t, b.Add("token-1", time.Now().Add(time.Hour)))
	mr.Close()

	// redis不可用时放行，由令牌签名和有效期兜底
	assert.False(t, b.Has("token-1"))
}
