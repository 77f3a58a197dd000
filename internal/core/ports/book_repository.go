package ports

import (
	"context"

	"github.com/bookvault/catalog-api/internal/core/domain"
)

// BookRepository defines persistence operations for catalog records.
// The isbn column carries a storage-level unique constraint; Create and
// Update return domain.ErrDuplicateISBN on a collision, which closes the
// race window left by the validation-layer existence check.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*domain.Book, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
	// List returns one page of books in stable id order plus the total count.
	List(ctx context.Context, page, perPage int) ([]*domain.Book, int64, error)
}
