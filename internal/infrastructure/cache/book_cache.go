// Package cache provides the read-through book cache built on sturdyc.
package cache

import (
	"context"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/bookvault/catalog-api/internal/api/metrics"
	"github.com/bookvault/catalog-api/internal/core/domain"
)

const (
	defaultTTL         = time.Hour
	capacity           = 10_000
	numShards          = 64
	evictionPercentage = 10
)

// BookCache caches single book records by id. Entries are immutable
// snapshots with a fixed TTL; a concurrent duplicate fetch only wastes
// work, it never corrupts data. Mutation paths call Invalidate so a
// changed or deleted book is not served for the remainder of its TTL.
type BookCache struct {
	client *sturdyc.Client[*domain.Book]
}

// New creates a BookCache with the given TTL. Extra sturdyc options can be
// passed through opts; tests inject a clock this way.
func New(ttl time.Duration, opts ...sturdyc.Option) *BookCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &BookCache{
		client: sturdyc.New[*domain.Book](capacity, numShards, ttl, evictionPercentage, opts...),
	}
}

// GetOrFetch returns the live cached snapshot for id, or runs fetch,
// stores the result, and returns it. Fetch errors are propagated and
// nothing is stored for them.
func (c *BookCache) GetOrFetch(ctx context.Context, id string, fetch func(context.Context) (*domain.Book, error)) (*domain.Book, error) {
	key := cacheKey(id)

	if book, ok := c.client.Get(key); ok {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return book, nil
	}

	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	return c.client.GetOrFetch(ctx, key, fetch)
}

// Invalidate drops the entry for id, if any.
func (c *BookCache) Invalidate(id string) {
	c.client.Delete(cacheKey(id))
}

func cacheKey(id string) string {
	return "book:" + id
}
