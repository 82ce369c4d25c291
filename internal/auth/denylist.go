package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ecohub/internal/config"

	"github.com/redis/go-redis/v9"
)

// Denylist 已登出令牌的 jti 集合，条目在令牌过期后失效
type Denylist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const denylistPrefix = "auth:denylist:"

type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist addr 为空时返回 nil, nil
func NewRedisDenylist(ctx context.Context, cfg *config.RedisConfig) (*RedisDenylist, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return &RedisDenylist{client: client}, nil
}

// NewRedisDenylistFromClient 使用已有客户端
func NewRedisDenylistFromClient(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{client: client}
}

func (d *RedisDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, denylistPrefix+jti, 1, ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := d.client.Get(ctx, denylistPrefix+jti).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *RedisDenylist) Close() error {
	return d.client.Close()
}

// MemoryDenylist 进程内实现，未配置 Redis 时使用
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := time.Now()
	for k, exp := range d.entries {
		if now.After(exp) {
			delete(d.entries, k)
		}
	}
	if expiresAt.After(now) {
		d.entries[jti] = expiresAt
	}
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.entries[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(exp) {
		delete(d.entries, jti)
		return false, nil
	}
	return true, nil
}
