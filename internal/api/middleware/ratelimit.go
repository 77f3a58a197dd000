package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/catalog-api/internal/api/metrics"
)

// Limiter reports whether another request is allowed for a scope within
// the current window.
type Limiter interface {
	Allow(ctx context.Context, scope string) (bool, error)
}

// RateLimit rejects requests once the caller exhausts the limiter's
// window. Scoped by client IP. Throttling is best-effort: a limiter
// backend failure lets the request through rather than taking the
// endpoint down with it.
func RateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				return next(c)
			}
			if !allowed {
				metrics.ThrottledRequestsTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too Many Attempts.")
			}
			return next(c)
		}
	}
}
