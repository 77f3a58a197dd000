package handler

import (
	"fmt"
	"strings"

	"github.com/bookvault/catalog-api/internal/core/domain"
	"github.com/bookvault/catalog-api/internal/core/ports"
)

const booksBasePath = "/api/v1/books"

// --- Service result → HTTP response ---

func toBookResponse(b *domain.Book) bookResponse {
	self := booksBasePath + "/" + b.ID
	return bookResponse{
		Title:   b.Title,
		Author:  strings.ToUpper(b.Author),
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Links: bookLinks{
			Self:   self,
			Update: self,
			Delete: self,
			All:    booksBasePath,
		},
	}
}

func toListResponse(r *ports.ListBooksResult) listBooksResponse {
	items := make([]bookResponse, len(r.Items))
	for i, b := range r.Items {
		items[i] = toBookResponse(b)
	}

	links := listLinks{
		First: pageURL(1),
		Last:  pageURL(r.LastPage),
	}
	if r.Page > 1 {
		prev := pageURL(r.Page - 1)
		links.Prev = &prev
	}
	if r.Page < r.LastPage {
		next := pageURL(r.Page + 1)
		links.Next = &next
	}

	meta := listMeta{
		CurrentPage: r.Page,
		LastPage:    r.LastPage,
		PerPage:     r.PerPage,
		Total:       r.Total,
	}
	if r.From > 0 {
		from, to := r.From, r.To
		meta.From = &from
		meta.To = &to
	}

	return listBooksResponse{Data: items, Links: links, Meta: meta}
}

func pageURL(page int) string {
	return fmt.Sprintf("%s?page=%d", booksBasePath, page)
}
