package mocks

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TrackingCache is an in-memory stand-in for the Redis cache. Values are
// stored as JSON so hits decode exactly as they would from Redis.
type TrackingCache struct {
	mu       sync.Mutex
	GetCalls int
	SetCalls int
	data     map[string]cacheItem
}

type cacheItem struct {
	raw    []byte
	expiry time.Time
}

func NewTrackingCache() *TrackingCache {
	return &TrackingCache{
		data: make(map[string]cacheItem),
	}
}

func (c *TrackingCache) Get(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.GetCalls++
	item, exists := c.data[key]
	if !exists || time.Now().After(item.expiry) {
		return redis.Nil
	}
	return json.Unmarshal(item.raw, dest)
}

func (c *TrackingCache) Set(ctx context.Context, key string, value any, exp time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.SetCalls++
	c.data[key] = cacheItem{raw: raw, expiry: time.Now().Add(exp)}
	return nil
}

func (c *TrackingCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

// Has reports whether key holds a live entry.
func (c *TrackingCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.data[key]
	return ok && time.Now().Before(item.expiry)
}

func (c *TrackingCache) Close() error {
	return nil
}
