package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheItem 包装缓存数据和过期时间
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Cache 进程内 LRU 缓存，条目带 TTL
type Cache struct {
	lruCache *lru.Cache[string, CacheItem]
	ttl      time.Duration

	// OnHit / OnMiss 可选的统计回调
	OnHit  func()
	OnMiss func()
}

// NewCache 创建指定容量和默认 TTL 的缓存
func NewCache(size int, ttl time.Duration) (*Cache, error) {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lruCache: l, ttl: ttl}, nil
}

// Set 使用默认 TTL 写入
func (c *Cache) Set(key string, data interface{}) {
	c.SetWithTTL(key, data, c.ttl)
}

func (c *Cache) SetWithTTL(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get 获取缓存，若不存在或已过期则返回 nil
func (c *Cache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		c.miss()
		return nil
	}

	// 检查过期
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		c.miss()
		return nil
	}

	if c.OnHit != nil {
		c.OnHit()
	}
	return val.Data
}

// Delete 删除指定缓存
func (c *Cache) Delete(key string) {
	c.lruCache.Remove(key)
}

func (c *Cache) Len() int {
	return c.lruCache.Len()
}

func (c *Cache) miss() {
	if c.OnMiss != nil {
		c.OnMiss()
	}
}
