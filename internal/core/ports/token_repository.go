package ports

import (
	"context"

	"github.com/bookvault/catalog-api/internal/core/domain"
)

// TokenRepository defines persistence for auth token records.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.AuthToken) error
	FindByID(ctx context.Context, id string) (*domain.AuthToken, error)
	// Delete removes the record. Returns domain.ErrTokenNotFound when the
	// id does not exist (already revoked).
	Delete(ctx context.Context, id string) error
}
