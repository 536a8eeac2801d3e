package ports

import (
	"context"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

// IdentityRepository defines the persistence interface for accounts.
type IdentityRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	Update(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Identity, error)
}
