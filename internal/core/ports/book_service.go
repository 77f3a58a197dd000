package ports

import (
	"context"

	"github.com/bookvault/catalog-api/internal/core/domain"
)

// CreateBookInput carries the validated fields for a new book.
type CreateBookInput struct {
	Title   string
	Author  string
	Summary string
	ISBN    string
}

// UpdateBookInput carries the validated fields for an in-place update.
// All fields are required; partial updates are not supported.
type UpdateBookInput struct {
	Title   string
	Author  string
	Summary string
	ISBN    string
}

// ListBooksResult is one stable-ordered page plus pagination metadata.
// From and To are 1-based indices into the full result set; both are 0
// when the page is empty.
type ListBooksResult struct {
	Items    []*domain.Book
	Total    int64
	Page     int
	PerPage  int
	LastPage int
	From     int
	To       int
}

// BookService defines use-case operations for the catalog.
type BookService interface {
	CreateBook(ctx context.Context, in CreateBookInput) (*domain.Book, error)
	// GetBook serves single-record reads through the book cache.
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	UpdateBook(ctx context.Context, id string, in UpdateBookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, id string) error
	// ListBooks always bypasses the cache and reads the repository.
	ListBooks(ctx context.Context, page int) (*ListBooksResult, error)
	// ISBNTaken reports whether isbn belongs to a book other than excludeID.
	// Pass an empty excludeID when creating.
	ISBNTaken(ctx context.Context, isbn, excludeID string) (bool, error)
}
