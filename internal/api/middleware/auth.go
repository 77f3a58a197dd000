package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/catalog-api/internal/core/domain"
)

// TokenAuthenticator resolves an opaque bearer token to its owner.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Auth validates the bearer token against the token store and injects the
// resolved user into the request context. Protected handlers never run for
// a missing, malformed, or revoked token.
func Auth(auth TokenAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return domain.ErrUnauthenticated
			}

			user, err := auth.Authenticate(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set("user", user)
			c.Set("token", parts[1])

			return next(c)
		}
	}
}
