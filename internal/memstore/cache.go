package memstore

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"stay/shared/cache"
	"stay/shared/constant"
)

// Cache is a map-backed cache.RedisCache. Entries never expire and misses report cache.Nil.
// Counters share the key space with entries, as they do in redis.
type Cache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

var _ cache.RedisCache = (*Cache)(nil)

func (c *Cache) Save(_ context.Context, key string, value any, _ int) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err //nolint:wrapcheck
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = data

	return nil
}

func (c *Cache) Get(_ context.Context, key string, value any) error {
	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()

	if !ok {
		return cache.Nil
	}

	return json.Unmarshal(data, value) //nolint:wrapcheck
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

func (c *Cache) Clear(_ context.Context, prefix string) error {
	prefix = strings.TrimSuffix(prefix, constant.Asterix)

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}

	return nil
}

func (c *Cache) Incr(_ context.Context, key string, _ int) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var count int64
	if data, ok := c.entries[key]; ok {
		count, _ = strconv.ParseInt(string(data), 10, 64)
	}

	count++
	c.entries[key] = strconv.AppendInt(nil, count, 10)

	return count, nil
}
