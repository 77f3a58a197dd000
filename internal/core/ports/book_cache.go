package ports

import (
	"context"

	"github.com/bookvault/catalog-api/internal/core/domain"
)

// BookCache is a read-through cache of single book records keyed by id.
// Cached values are immutable snapshots: concurrent readers may race to
// populate the same key, which only duplicates the fetch.
type BookCache interface {
	// GetOrFetch returns the live cached snapshot for id, or invokes fetch,
	// stores the result for the configured TTL, and returns it.
	GetOrFetch(ctx context.Context, id string, fetch func(context.Context) (*domain.Book, error)) (*domain.Book, error)
	// Invalidate drops the entry for id, if any.
	Invalidate(id string)
}
