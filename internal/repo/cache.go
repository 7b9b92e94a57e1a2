package repo

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// collectionCache caches the loaded collection for read operations, with
// singleflight coalescing so concurrent readers share one store read. Every
// successful write invalidates it; mutations always load fresh under the
// collection lock and never read through the cache.
type collectionCache struct {
	mu     sync.RWMutex
	cached *Collection
	group  singleflight.Group
	load   func(ctx context.Context) (*Collection, error)
}

func newCollectionCache(load func(ctx context.Context) (*Collection, error)) *collectionCache {
	return &collectionCache{load: load}
}

// Get returns the cached collection or loads it from the store.
func (c *collectionCache) Get(ctx context.Context) (*Collection, error) {
	c.mu.RLock()
	if c.cached != nil {
		col := c.cached
		c.mu.RUnlock()
		return col, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do("load", func() (any, error) {
		// Double-check after acquiring the singleflight slot.
		c.mu.RLock()
		if c.cached != nil {
			col := c.cached
			c.mu.RUnlock()
			return col, nil
		}
		c.mu.RUnlock()

		col, err := c.load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cached = col
		c.mu.Unlock()
		return col, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Collection), nil
}

// Invalidate clears the cache, forcing the next Get to reload.
func (c *collectionCache) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}
