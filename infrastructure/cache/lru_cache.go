// Package cache provides the bounded query-result cache used by the query
// bus.
package cache

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRUCache is a size-bounded cache with per-entry TTL. Expired entries are
// dropped lazily on read, so the cache owns no background goroutine.
type LRUCache struct {
	items *lru.Cache[string, cacheItem]
	now   func() time.Time
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// NewLRUCache creates a cache holding at most size entries
func NewLRUCache(size int) (*LRUCache, error) {
	items, err := lru.New[string, cacheItem](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &LRUCache{items: items, now: time.Now}, nil
}

// Get retrieves a value from cache
func (c *LRUCache) Get(ctx context.Context, key string) (interface{}, bool) {
	item, ok := c.items.Get(key)
	if !ok {
		return nil, false
	}
	if !c.now().Before(item.expiresAt) {
		c.items.Remove(key)
		return nil, false
	}
	return item.value, true
}

// Set stores a value in cache with TTL in seconds
func (c *LRUCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	if ttl <= 0 {
		return nil
	}
	c.items.Add(key, cacheItem{
		value:     value,
		expiresAt: c.now().Add(time.Duration(ttl) * time.Second),
	})
	return nil
}

// Delete removes a value from cache
func (c *LRUCache) Delete(ctx context.Context, key string) error {
	c.items.Remove(key)
	return nil
}

// Clear removes all values from cache
func (c *LRUCache) Clear(ctx context.Context) error {
	c.items.Purge()
	return nil
}

// Len reports the number of entries, expired ones included
func (c *LRUCache) Len() int {
	return c.items.Len()
}
