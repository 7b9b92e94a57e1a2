package repo

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLoadsOnce(t *testing.T) {
	var loads atomic.Int32
	c := newCollectionCache(func(ctx context.Context) (*Collection, error) {
		loads.Add(1)
		return newCollection(), nil
	})
	ctx := context.Background()

	first, err := c.Get(ctx)
	require.NoError(t, err)
	second, err := c.Get(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), loads.Load())
}

func TestCacheInvalidateForcesReload(t *testing.T) {
	var loads atomic.Int32
	c := newCollectionCache(func(ctx context.Context) (*Collection, error) {
		loads.Add(1)
		return newCollection(), nil
	})
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)

	c.Invalidate()

	_, err = c.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())
}

func TestCacheConcurrentReaders(t *testing.T) {
	var loads atomic.Int32
	c := newCollectionCache(func(ctx context.Context) (*Collection, error) {
		loads.Add(1)
		return newCollection(), nil
	})
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load(), "concurrent readers must share one load")
}
