package cache

import (
	"context"
	"time"
)

// LayeredCache is a two-level cache: an in-process L1 in front of a shared L2
// (Redis in production).
type LayeredCache struct {
	mem    *MemoryCache
	remote Service
	memTTL time.Duration
}

// NewLayeredCache puts a memory cache of memSize entries in front of remote.
// Remote hits stay in memory for at most memTTL. Zero values pick defaults.
func NewLayeredCache(remote Service, memSize int, memTTL time.Duration) *LayeredCache {
	if memTTL <= 0 {
		memTTL = time.Minute
	}
	return &LayeredCache{
		mem:    NewMemoryCache(memSize),
		remote: remote,
		memTTL: memTTL,
	}
}

// Set writes through: remote first, then memory.
func (lc *LayeredCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if err := lc.remote.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	_ = lc.mem.Set(ctx, key, value, lc.l1TTL(expiration))
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string) ([]byte, error) {
	if data, err := lc.mem.Get(ctx, key); err == nil {
		return data, nil
	}
	data, err := lc.remote.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = lc.mem.Set(ctx, key, data, lc.memTTL)
	return data, nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.mem.Delete(ctx, keys...)
	return lc.remote.Delete(ctx, keys...)
}

func (lc *LayeredCache) Exists(ctx context.Context, key string) (bool, error) {
	if ok, _ := lc.mem.Exists(ctx, key); ok {
		return true, nil
	}
	return lc.remote.Exists(ctx, key)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.mem.Close()
	return lc.remote.Close()
}

func (lc *LayeredCache) l1TTL(expiration time.Duration) time.Duration {
	if expiration > 0 && expiration < lc.memTTL {
		return expiration
	}
	return lc.memTTL
}

var _ Service = (*LayeredCache)(nil)
