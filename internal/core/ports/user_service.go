package ports

import (
	"context"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

// UserUpdate carries the editable fields of an account. Nil fields are
// left unchanged.
type UserUpdate struct {
	Role        *string
	Phone       *string
	Password    *string
	IsProtected *bool
}

// UserService implements administrative account management. Every
// operation takes the acting identity so root-only and protected-account
// rules can be enforced server-side.
type UserService interface {
	List(ctx context.Context, actor *domain.Identity) ([]*domain.Identity, error)
	Create(ctx context.Context, actor *domain.Identity, username, password, role string) (*domain.Identity, error)
	Update(ctx context.Context, actor *domain.Identity, targetID string, update UserUpdate) (*domain.Identity, error)
	Delete(ctx context.Context, actor *domain.Identity, targetID string) error
}
