package ports

import (
	"context"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

// RegisterInput is the household head self-registration payload.
type RegisterInput struct {
	NationalID  string
	DisplayName string
	Phone       string
	Password    string
}

// AuthService implements login with lockout tracking, registration and
// password changes.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Identity, error)
	Register(ctx context.Context, input RegisterInput) (*domain.Identity, error)
	ChangePassword(ctx context.Context, identityID, current, next string) error
}
