package ports

import (
	"context"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

// SettingsRepository stores the single global settings document.
type SettingsRepository interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}
