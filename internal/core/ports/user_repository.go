package ports

import (
	"context"

	"github.com/bookvault/catalog-api/internal/core/domain"
)

// UserRepository defines persistence for registered accounts. The email
// column carries a storage-level unique constraint; Create returns
// domain.ErrEmailTaken on a collision regardless of any prior check.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
