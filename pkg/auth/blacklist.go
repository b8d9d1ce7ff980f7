package auth

import (
	"sync"
	"time"
)

// Blacklist 令牌黑名单接口
type Blacklist interface {
	// Add 将令牌添加到黑名单，保留到expireAt
	Add(token string, expireAt time.Time) error

	// Has 检查令牌是否在黑名单中
	Has(token string) bool
}

var (
	blacklist   Blacklist
	blacklistMu sync.RWMutex
)

// SetBlacklist 设置黑名单实现（启动时根据配置选择memory或redis）
func SetBlacklist(b Blacklist) {
	blacklistMu.Lock()
	defer blacklistMu.Unlock()
	blacklist = b
}

// GetBlacklist 获取当前黑名单实现，默认内存实现
func GetBlacklist() Blacklist {
	blacklistMu.RLock()
	b := blacklist
	blacklistMu.RUnlock()
	if b != nil {
		return b
	}

	blacklistMu.Lock()
	defer blacklistMu.Unlock()
	if blacklist == nil {
		blacklist = NewMemoryBlacklist()
	}
	return blacklist
}

// MemoryBlacklist 内存令牌黑名单，用于管理已失效的令牌
type MemoryBlacklist struct {
	tokens map[string]time.Time // 令牌->过期时间映射
	mutex  sync.RWMutex
}

// NewMemoryBlacklist 创建内存黑名单并启动定期清理
func NewMemoryBlacklist() *MemoryBlacklist {
	b := &MemoryBlacklist{
		tokens: make(map[string]time.Time),
	}
	// 定期清理过期令牌
	go b.cleanupTask()
	return b
}

// Add 将令牌添加到黑名单
func (b *MemoryBlacklist) Add(token string, expireAt time.Time) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.tokens[token] = expireAt
	return nil
}

// Has 检查令牌是否在黑名单中
func (b *MemoryBlacklist) Has(token string) bool {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	expireAt, exists := b.tokens[token]
	if !exists {
		return false
	}
	// 已过期的条目等价于不在黑名单中
	return time.Now().Before(expireAt)
}

// cleanupTask 定期清理过期的令牌
func (b *MemoryBlacklist) cleanupTask() {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		b.cleanup()
	}
}

// cleanup 清理过期的令牌
func (b *MemoryBlacklist) cleanup() {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	now := time.Now()
	for token, expireAt := range b.tokens {
		if now.After(expireAt) {
			delete(b.tokens, token)
		}
	}
}
