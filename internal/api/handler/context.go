package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/bookvault/catalog-api/internal/core/domain"
)

// ctxToken extracts the plaintext bearer token injected by the Auth
// middleware, for operations that act on the token itself (logout).
// An empty value means the middleware did not run for this route.
func ctxToken(c echo.Context) (string, error) {
	token, _ := c.Get("token").(string)
	if token == "" {
		return "", domain.ErrUnauthenticated
	}
	return token, nil
}
