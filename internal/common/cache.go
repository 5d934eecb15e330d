package common

import (
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

// GetOrAdd returns the value stored under key, storing value first when there is none.
func (c *Cache) GetOrAdd(key string, value interface{}) interface{} {
	if err := c.Cache.Add(key, value, cache.DefaultExpiration); err == nil {
		return value
	}
	if v, ok := c.Cache.Get(key); ok {
		return v
	}
	return value
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

// DeleteFunc removes every unexpired item for which fn returns true.
func (c *Cache) DeleteFunc(fn func(key string, value interface{}) bool) {
	for k, item := range c.Cache.Items() {
		if fn(k, item.Object) {
			c.Cache.Delete(k)
		}
	}
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyUserByAccessToken(token []byte) string {
	return "user_by_access_token:" + hex.EncodeToString(token)
}
