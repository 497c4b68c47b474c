package memory

import (
	"context"

	"github.com/aretw0/amigurumi/pkg/domain"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxEntries bounds the cache when no WithMaxEntries option is given.
const DefaultMaxEntries = 1024

// Cache implements ports.PatternCache in memory, evicting the least recently
// used pattern once MaxEntries is reached.
// Safe for concurrent use.
type Cache struct {
	entries    *lru.Cache[string, *domain.Result]
	maxEntries int
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxEntries sets how many patterns the cache holds. Values below 1 keep
// DefaultMaxEntries.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// NewCache creates a new in-memory cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{maxEntries: DefaultMaxEntries}
	for _, opt := range opts {
		opt(c)
	}
	// lru.New only fails on a non-positive size.
	c.entries, _ = lru.New[string, *domain.Result](c.maxEntries)
	return c
}

// MaxEntries returns the capacity of the cache.
func (c *Cache) MaxEntries() int {
	return c.maxEntries
}

// Get returns a copy of the cached result.
func (c *Cache) Get(ctx context.Context, key string) (*domain.Result, error) {
	result, ok := c.entries.Get(key)
	if !ok {
		return nil, domain.ErrPatternNotCached
	}
	return result.Clone(), nil
}

// Set stores a copy of the result.
func (c *Cache) Set(ctx context.Context, key string, result *domain.Result) error {
	c.entries.Add(key, result.Clone())
	return nil
}

// Delete removes the entry.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.entries.Remove(key)
	return nil
}

// Keys returns the cached keys, least recently used first.
func (c *Cache) Keys(ctx context.Context) ([]string, error) {
	return c.entries.Keys(), nil
}
