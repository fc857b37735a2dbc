package cache

import (
	"sync"
	"time"
)

// Cache is a small in-process TTL key-value store used in front of the
// aggregation facade to avoid redundant provider fan-outs for identical
// requests within a short window. Expiry is checked lazily on read.
type Cache struct {
	mu    sync.Mutex
	items map[string]entry
}

type entry struct {
	value     any
	expiresAt time.Time
}

func New() *Cache {
	return &Cache{items: make(map[string]entry)}
}

func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	return item.value, true
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
}
