package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis键前缀
const blacklistKeyPrefix = "jwt:blacklist:"

// RedisBlacklist Redis令牌黑名单实现，多实例部署时共享
type RedisBlacklist struct {
	redis *redis.Client
	ctx   context.Context
}

// NewRedisBlacklist 创建Redis黑名单
func NewRedisBlacklist(client *redis.Client) *RedisBlacklist {
	return &RedisBlacklist{
		redis: client,
		ctx:   context.Background(),
	}
}

// Add 将令牌添加到黑名单，TTL取到令牌过期为止
func (b *RedisBlacklist) Add(token string, expireAt time.Time) error {
	duration := time.Until(expireAt)
	if duration <= 0 {
		// 已过期的令牌无需添加
		return nil
	}

	key := blacklistKeyPrefix + token
	if err := b.redis.Set(b.ctx, key, "1", duration).Err(); err != nil {
		return fmt.Errorf("添加令牌到黑名单失败: %w", err)
	}
	return nil
}

// Has 检查令牌是否在黑名单中
func (b *RedisBlacklist) Has(token string) bool {
	key := blacklistKeyPrefix + token
	result, err := b.redis.Exists(b.ctx, key).Result()
	if err != nil {
		// redis异常时放行，由令牌本身的签名和有效期兜底
		return false
	}
	return result > 0
}
