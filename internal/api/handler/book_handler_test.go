package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/catalog-api/internal/core/domain"
	"github.com/bookvault/catalog-api/internal/core/ports"
)

type stubBookService struct {
	createFn    func(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error)
	getFn       func(ctx context.Context, id string) (*domain.Book, error)
	updateFn    func(ctx context.Context, id string, in ports.UpdateBookInput) (*domain.Book, error)
	deleteFn    func(ctx context.Context, id string) error
	listFn      func(ctx context.Context, page int) (*ports.ListBooksResult, error)
	isbnTakenFn func(ctx context.Context, isbn, excludeID string) (bool, error)
}

func (s *stubBookService) CreateBook(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error) {
	return s.createFn(ctx, in)
}

func (s *stubBookService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	return s.getFn(ctx, id)
}

func (s *stubBookService) UpdateBook(ctx context.Context, id string, in ports.UpdateBookInput) (*domain.Book, error) {
	return s.updateFn(ctx, id, in)
}

func (s *stubBookService) DeleteBook(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubBookService) ListBooks(ctx context.Context, page int) (*ports.ListBooksResult, error) {
	return s.listFn(ctx, page)
}

func (s *stubBookService) ISBNTaken(ctx context.Context, isbn, excludeID string) (bool, error) {
	if s.isbnTakenFn == nil {
		return false, nil
	}
	return s.isbnTakenFn(ctx, isbn, excludeID)
}

func newTestContext(method, target, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func sampleBook() *domain.Book {
	return &domain.Book{
		ID:      "b1",
		Title:   "Dune",
		Author:  "Frank Herbert",
		Summary: "Science fiction epic set on the desert planet Arrakis.",
		ISBN:    "9780441013593",
	}
}

func TestBookHandler_Get(t *testing.T) {
	svc := &stubBookService{
		getFn: func(_ context.Context, id string) (*domain.Book, error) {
			if id != "b1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return sampleBook(), nil
		},
	}
	h := NewBookHandler(svc)

	_, c, rec := newTestContext(http.MethodGet, "/api/v1/books/b1", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Get(c); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp bookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Author != "FRANK HERBERT" {
		t.Fatalf("expected upper-cased author, got %q", resp.Author)
	}
	if resp.Links.Self != "/api/v1/books/b1" || resp.Links.All != "/api/v1/books" {
		t.Fatalf("unexpected links: %+v", resp.Links)
	}

	// The record id is a path concern, not a body field.
	var raw map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &raw)
	if _, ok := raw["id"]; ok {
		t.Fatalf("response must not expose the record id")
	}
}

func TestBookHandler_Get_NotFound(t *testing.T) {
	svc := &stubBookService{
		getFn: func(context.Context, string) (*domain.Book, error) {
			return nil, domain.ErrBookNotFound
		},
	}
	h := NewBookHandler(svc)

	_, c, _ := newTestContext(http.MethodGet, "/api/v1/books/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}

func TestBookHandler_Create(t *testing.T) {
	var gotInput ports.CreateBookInput
	svc := &stubBookService{
		createFn: func(_ context.Context, in ports.CreateBookInput) (*domain.Book, error) {
			gotInput = in
			b := sampleBook()
			b.Title, b.Author, b.Summary, b.ISBN = in.Title, in.Author, in.Summary, in.ISBN
			return b, nil
		},
	}
	h := NewBookHandler(svc)

	body := `{"title":"Dune","author":"Frank Herbert","summary":"Science fiction epic set on the desert planet Arrakis.","isbn":"9780441013593"}`
	_, c, rec := newTestContext(http.MethodPost, "/api/v1/books", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotInput.Title != "Dune" || gotInput.ISBN != "9780441013593" {
		t.Fatalf("service received wrong input: %+v", gotInput)
	}
}

func TestBookHandler_Create_AllViolationsReported(t *testing.T) {
	probed := false
	svc := &stubBookService{
		isbnTakenFn: func(context.Context, string, string) (bool, error) {
			probed = true
			return false, nil
		},
	}
	h := NewBookHandler(svc)

	// Short title, short summary, 12-digit isbn: three violations at once.
	body := `{"title":"ab","author":"Frank Herbert","summary":"too short","isbn":"978044101359"}`
	_, c, _ := newTestContext(http.MethodPost, "/api/v1/books", body)

	err := h.Create(c)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"title", "summary", "isbn"} {
		if !verr.Has(field) {
			t.Fatalf("expected violation for %s, got %+v", field, verr.Fields)
		}
	}
	if verr.Has("author") {
		t.Fatalf("author was valid, got %+v", verr.Fields)
	}
	if probed {
		t.Fatalf("uniqueness must not be probed for a malformed isbn")
	}
}

func TestBookHandler_Create_ISBNTaken(t *testing.T) {
	svc := &stubBookService{
		isbnTakenFn: func(_ context.Context, isbn, excludeID string) (bool, error) {
			if isbn != "9780441013593" || excludeID != "" {
				t.Fatalf("unexpected probe: isbn=%s exclude=%s", isbn, excludeID)
			}
			return true, nil
		},
	}
	h := NewBookHandler(svc)

	body := `{"title":"Dune","author":"Frank Herbert","summary":"Science fiction epic set on the desert planet Arrakis.","isbn":"9780441013593"}`
	_, c, _ := newTestContext(http.MethodPost, "/api/v1/books", body)

	err := h.Create(c)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	msgs := verr.Fields["isbn"]
	if len(msgs) != 1 || msgs[0] != "The isbn has already been taken." {
		t.Fatalf("unexpected isbn messages: %v", msgs)
	}
}

func TestBookHandler_Create_BadJSON(t *testing.T) {
	h := NewBookHandler(&stubBookService{})

	_, c, _ := newTestContext(http.MethodPost, "/api/v1/books", `{"title":`)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestBookHandler_Update(t *testing.T) {
	svc := &stubBookService{
		isbnTakenFn: func(_ context.Context, _, excludeID string) (bool, error) {
			// Updates must exclude the record itself from the probe.
			if excludeID != "b1" {
				t.Fatalf("expected exclude id b1, got %q", excludeID)
			}
			return false, nil
		},
		updateFn: func(_ context.Context, id string, in ports.UpdateBookInput) (*domain.Book, error) {
			b := sampleBook()
			b.ID = id
			b.Title = in.Title
			return b, nil
		},
	}
	h := NewBookHandler(svc)

	body := `{"title":"Dune Messiah","author":"Frank Herbert","summary":"Second volume of the desert planet saga.","isbn":"9780441013593"}`
	_, c, rec := newTestContext(http.MethodPut, "/api/v1/books/b1", body)
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp bookResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Title != "Dune Messiah" {
		t.Fatalf("unexpected title: %q", resp.Title)
	}
}

func TestBookHandler_Delete(t *testing.T) {
	deleted := ""
	svc := &stubBookService{
		deleteFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewBookHandler(svc)

	_, c, rec := newTestContext(http.MethodDelete, "/api/v1/books/b1", "")
	c.SetParamNames("id")
	c.SetParamValues("b1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
	if deleted != "b1" {
		t.Fatalf("service received wrong id: %q", deleted)
	}
}

func TestBookHandler_List(t *testing.T) {
	svc := &stubBookService{
		listFn: func(_ context.Context, page int) (*ports.ListBooksResult, error) {
			if page != 2 {
				t.Fatalf("expected page 2, got %d", page)
			}
			b1, b2 := sampleBook(), sampleBook()
			b2.ID = "b2"
			return &ports.ListBooksResult{
				Items:    []*domain.Book{b1, b2},
				Total:    5,
				Page:     2,
				PerPage:  2,
				LastPage: 3,
				From:     3,
				To:       4,
			}, nil
		},
	}
	h := NewBookHandler(svc)

	_, c, rec := newTestContext(http.MethodGet, "/api/v1/books?page=2", "")

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp listBooksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Data))
	}
	if resp.Links.First != "/api/v1/books?page=1" || resp.Links.Last != "/api/v1/books?page=3" {
		t.Fatalf("unexpected first/last links: %+v", resp.Links)
	}
	if resp.Links.Prev == nil || *resp.Links.Prev != "/api/v1/books?page=1" {
		t.Fatalf("unexpected prev link: %v", resp.Links.Prev)
	}
	if resp.Links.Next == nil || *resp.Links.Next != "/api/v1/books?page=3" {
		t.Fatalf("unexpected next link: %v", resp.Links.Next)
	}
	if resp.Meta.CurrentPage != 2 || resp.Meta.LastPage != 3 || resp.Meta.PerPage != 2 || resp.Meta.Total != 5 {
		t.Fatalf("unexpected meta: %+v", resp.Meta)
	}
	if resp.Meta.From == nil || *resp.Meta.From != 3 || resp.Meta.To == nil || *resp.Meta.To != 4 {
		t.Fatalf("unexpected from/to: %+v", resp.Meta)
	}
}

func TestBookHandler_List_BoundaryLinks(t *testing.T) {
	svc := &stubBookService{
		listFn: func(context.Context, int) (*ports.ListBooksResult, error) {
			return &ports.ListBooksResult{
				Items:    nil,
				Total:    0,
				Page:     1,
				PerPage:  2,
				LastPage: 1,
			}, nil
		},
	}
	h := NewBookHandler(svc)

	_, c, rec := newTestContext(http.MethodGet, "/api/v1/books", "")

	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	var resp listBooksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	// Single empty page: no prev/next, null from/to.
	if resp.Links.Prev != nil || resp.Links.Next != nil {
		t.Fatalf("expected nil prev/next, got %+v", resp.Links)
	}
	if resp.Meta.From != nil || resp.Meta.To != nil {
		t.Fatalf("expected null from/to, got %+v", resp.Meta)
	}

	var raw struct {
		Meta map[string]any `json:"meta"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &raw)
	if v, ok := raw.Meta["from"]; !ok || v != nil {
		t.Fatalf("expected meta.from to serialize as null, got %v", v)
	}
}
