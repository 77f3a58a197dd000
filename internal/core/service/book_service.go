package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/catalog-api/internal/api/metrics"
	"github.com/bookvault/catalog-api/internal/core/domain"
	"github.com/bookvault/catalog-api/internal/core/ports"
)

const defaultPerPage = 2

// BookService implements catalog use cases. Single-record reads go through
// the read-through cache; mutations write to the repository and invalidate
// the affected entry so a deleted or updated book is never served stale.
type BookService struct {
	repo    ports.BookRepository
	cache   ports.BookCache
	perPage int
	log     zerolog.Logger
}

func NewBookService(repo ports.BookRepository, cache ports.BookCache, perPage int, log zerolog.Logger) *BookService {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return &BookService{repo: repo, cache: cache, perPage: perPage, log: log}
}

func (s *BookService) CreateBook(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error) {
	taken, err := s.ISBNTaken(ctx, in.ISBN, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.FieldTaken("isbn")
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Title:     in.Title,
		Author:    in.Author,
		Summary:   in.Summary,
		ISBN:      in.ISBN,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		// The unique index catches writers that raced past ISBNTaken.
		if errors.Is(err, domain.ErrDuplicateISBN) {
			return nil, domain.FieldTaken("isbn")
		}
		s.log.Error().Err(err).Msg("failed to create book")
		return nil, err
	}

	metrics.BooksCreatedTotal.Inc()
	s.log.Info().Str("book_id", created.ID).Str("isbn", created.ISBN).Msg("book created")
	return created, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.cache.GetOrFetch(ctx, id, func(ctx context.Context) (*domain.Book, error) {
		return s.repo.FindByID(ctx, id)
	})
}

func (s *BookService) UpdateBook(ctx context.Context, id string, in ports.UpdateBookInput) (*domain.Book, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A book may keep its own isbn; only a collision with another record fails.
	taken, err := s.ISBNTaken(ctx, in.ISBN, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.FieldTaken("isbn")
	}

	existing.Title = in.Title
	existing.Author = in.Author
	existing.Summary = in.Summary
	existing.ISBN = in.ISBN
	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateISBN) {
			return nil, domain.FieldTaken("isbn")
		}
		s.log.Error().Err(err).Str("book_id", id).Msg("failed to update book")
		return nil, err
	}

	s.cache.Invalidate(id)
	s.log.Info().Str("book_id", id).Msg("book updated")
	return updated, nil
}

func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(id)
	s.log.Info().Str("book_id", id).Msg("book deleted")
	return nil
}

func (s *BookService) ListBooks(ctx context.Context, page int) (*ports.ListBooksResult, error) {
	if page < 1 {
		page = 1
	}

	items, total, err := s.repo.List(ctx, page, s.perPage)
	if err != nil {
		return nil, err
	}

	lastPage := int((total + int64(s.perPage) - 1) / int64(s.perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from, to := 0, 0
	if len(items) > 0 {
		from = (page-1)*s.perPage + 1
		to = from + len(items) - 1
	}

	return &ports.ListBooksResult{
		Items:    items,
		Total:    total,
		Page:     page,
		PerPage:  s.perPage,
		LastPage: lastPage,
		From:     from,
		To:       to,
	}, nil
}

func (s *BookService) ISBNTaken(ctx context.Context, isbn, excludeID string) (bool, error) {
	other, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, domain.ErrBookNotFound) {
			return false, nil
		}
		return false, err
	}
	return other.ID != excludeID, nil
}
