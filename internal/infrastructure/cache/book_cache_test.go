package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/viccon/sturdyc"

	"github.com/bookvault/catalog-api/internal/core/domain"
)

type countingFetcher struct {
	calls int
	book  *domain.Book
	err   error
}

func (f *countingFetcher) fetch(context.Context) (*domain.Book, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.book, nil
}

func testBook(id string) *domain.Book {
	return &domain.Book{
		ID:      id,
		Title:   "Dune",
		Author:  "Frank Herbert",
		Summary: "Science fiction epic set on the desert planet Arrakis.",
		ISBN:    "9780441013593",
	}
}

func TestBookCache_HitSkipsFetch(t *testing.T) {
	c := New(time.Hour)
	f := &countingFetcher{book: testBook("b1")}

	got, err := c.GetOrFetch(context.Background(), "b1", f.fetch)
	if err != nil {
		t.Fatalf("first read failed: %v", err)
	}
	if got.ID != "b1" {
		t.Fatalf("unexpected book: %+v", got)
	}

	if _, err := c.GetOrFetch(context.Background(), "b1", f.fetch); err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if f.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", f.calls)
	}
}

func TestBookCache_ExpiryRefetches(t *testing.T) {
	clock := sturdyc.NewTestClock(time.Now())
	c := New(60*time.Minute, sturdyc.WithClock(clock))
	f := &countingFetcher{book: testBook("b1")}

	if _, err := c.GetOrFetch(context.Background(), "b1", f.fetch); err != nil {
		t.Fatalf("first read failed: %v", err)
	}

	clock.Add(61 * time.Minute)

	if _, err := c.GetOrFetch(context.Background(), "b1", f.fetch); err != nil {
		t.Fatalf("read after expiry failed: %v", err)
	}
	if f.calls != 2 {
		t.Fatalf("expected refetch after ttl, got %d fetches", f.calls)
	}
}

func TestBookCache_InvalidateRefetches(t *testing.T) {
	c := New(time.Hour)
	f := &countingFetcher{book: testBook("b1")}

	if _, err := c.GetOrFetch(context.Background(), "b1", f.fetch); err != nil {
		t.Fatalf("first read failed: %v", err)
	}

	c.Invalidate("b1")

	if _, err := c.GetOrFetch(context.Background(), "b1", f.fetch); err != nil {
		t.Fatalf("read after invalidation failed: %v", err)
	}
	if f.calls != 2 {
		t.Fatalf("expected refetch after invalidation, got %d fetches", f.calls)
	}
}

func TestBookCache_KeysAreIndependent(t *testing.T) {
	c := New(time.Hour)
	f1 := &countingFetcher{book: testBook("b1")}
	f2 := &countingFetcher{book: testBook("b2")}

	if _, err := c.GetOrFetch(context.Background(), "b1", f1.fetch); err != nil {
		t.Fatalf("read b1 failed: %v", err)
	}
	got, err := c.GetOrFetch(context.Background(), "b2", f2.fetch)
	if err != nil {
		t.Fatalf("read b2 failed: %v", err)
	}
	if got.ID != "b2" {
		t.Fatalf("wrong book served for b2: %+v", got)
	}
	if f1.calls != 1 || f2.calls != 1 {
		t.Fatalf("expected one fetch per key, got %d and %d", f1.calls, f2.calls)
	}
}

func TestBookCache_FetchErrorNotCached(t *testing.T) {
	c := New(time.Hour)
	boom := errors.New("storage down")
	f := &countingFetcher{err: boom}

	if _, err := c.GetOrFetch(context.Background(), "b1", f.fetch); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error to propagate, got %v", err)
	}

	// The failure is not stored; a later read tries the source again.
	f.err = nil
	f.book = testBook("b1")
	got, err := c.GetOrFetch(context.Background(), "b1", f.fetch)
	if err != nil {
		t.Fatalf("read after recovery failed: %v", err)
	}
	if got.ID != "b1" {
		t.Fatalf("unexpected book: %+v", got)
	}
	if f.calls != 2 {
		t.Fatalf("expected two fetch attempts, got %d", f.calls)
	}
}
