package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/catalog-api/internal/core/domain"
	"github.com/bookvault/catalog-api/internal/core/ports"
)

// BookHandler handles HTTP requests for catalog operations.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /api/v1/books.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        page  query     int  false  "Page number (1-based)"
// @Success      200   {object}  listBooksResponse
// @Router       /books [get]
func (h *BookHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	result, err := h.service.ListBooks(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(result))
}

// Get handles GET /api/v1/books/:id.
//
// @Summary      Get a book by id
// @Tags         books
// @Produce      json
// @Param        id  path      string  true  "Book id"
// @Success      200 {object}  bookResponse
// @Failure      404 {object}  map[string]string
// @Router       /books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.GetBook(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponse(book))
}

// Create handles POST /api/v1/books.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book fields"
// @Success      201   {object}  bookResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	verr, err := h.validateBook(c, &req, req.ISBN, "")
	if err != nil {
		return err
	}
	if !verr.Empty() {
		return verr
	}

	book, err := h.service.CreateBook(c.Request().Context(), ports.CreateBookInput{
		Title:   req.Title,
		Author:  req.Author,
		Summary: req.Summary,
		ISBN:    req.ISBN,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// Update handles PUT and PATCH /api/v1/books/:id.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Book id"
// @Param        body  body      updateBookRequest  true  "Book fields"
// @Success      200   {object}  bookResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]any
// @Router       /books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	id := c.Param("id")

	var req updateBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	verr, err := h.validateBook(c, &req, req.ISBN, id)
	if err != nil {
		return err
	}
	if !verr.Empty() {
		return verr
	}

	book, err := h.service.UpdateBook(c.Request().Context(), id, ports.UpdateBookInput{
		Title:   req.Title,
		Author:  req.Author,
		Summary: req.Summary,
		ISBN:    req.ISBN,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBookResponse(book))
}

// Delete handles DELETE /api/v1/books/:id.
//
// @Summary      Delete a book
// @Tags         books
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      204
// @Failure      401 {object}  map[string]string
// @Failure      404 {object}  map[string]string
// @Router       /books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteBook(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// validateBook runs the tag rules and the isbn uniqueness rule together so
// a response carries every violation, not just the first. excludeID is the
// record being updated, or empty on create.
func (h *BookHandler) validateBook(c echo.Context, req any, isbn, excludeID string) (*domain.ValidationError, error) {
	verr := domain.NewValidationError()
	if err := c.Validate(req); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return nil, err
		}
		verr = ve
	}

	// Only probe uniqueness for an isbn that passed its shape rules.
	if isbn != "" && !verr.Has("isbn") {
		taken, err := h.service.ISBNTaken(c.Request().Context(), isbn, excludeID)
		if err != nil {
			return nil, err
		}
		if taken {
			verr.Add("isbn", domain.TakenMessage("isbn"))
		}
	}
	return verr, nil
}
