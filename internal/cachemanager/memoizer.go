package cachemanager

import (
	"context"
	"time"
)

// Memoizer wraps a CacheManager around a pure compute function. Lookups go
// through the cache first and fall back to computing and storing the value.
type Memoizer[K comparable, V any, I any] struct {
	cache           CacheManager[K, V]
	fn              func(ctx context.Context, input I) V
	shouldSkipCache bool
}

func NewMemoizer[K comparable, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) V,
	shouldSkipCache bool,
) *Memoizer[K, V, I] {
	return &Memoizer[K, V, I]{
		cache:           cache,
		fn:              fn,
		shouldSkipCache: shouldSkipCache,
	}
}

func (m *Memoizer[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) V {
	if m.shouldSkipCache {
		return m.fn(ctx, input)
	}

	if value, ok := m.cache.Get(ctx, key); ok {
		return value
	}

	value := m.fn(ctx, input)
	m.cache.Set(ctx, key, value, ttl)

	return value
}

// Invalidate drops every memoized value. Callers use this when the
// underlying compute function changes meaning, such as a theme swap.
func (m *Memoizer[K, V, I]) Invalidate(ctx context.Context) error {
	return m.cache.Flush(ctx)
}
