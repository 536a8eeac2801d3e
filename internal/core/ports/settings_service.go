package ports

import (
	"context"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

// SettingsService serves the global settings with a bounded-staleness
// cache, refreshed on an interval rather than once per process start.
type SettingsService interface {
	Current(ctx context.Context) (domain.Settings, error)
	Public(ctx context.Context) (domain.PublicSettings, error)
	Update(ctx context.Context, actor *domain.Identity, settings domain.Settings) error
}
