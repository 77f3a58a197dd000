package ports

import (
	"context"

	"github.com/bookvault/catalog-api/internal/core/domain"
)

// AuthService defines registration, login, and the bearer token lifecycle.
type AuthService interface {
	// Register creates an account. Returns a *domain.ValidationError on the
	// email field when the address is already registered.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials and issues a fresh opaque token. The
	// plaintext token is returned exactly once; only its hash persists.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Authenticate resolves a presented bearer token to its owner. Fails
	// with domain.ErrUnauthenticated for absent, malformed, or revoked tokens.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	// Logout revokes the presented token. Once revoked, the token can never
	// authenticate again.
	Logout(ctx context.Context, token string) error
	// EmailTaken reports whether an account with email already exists.
	EmailTaken(ctx context.Context, email string) (bool, error)
}
