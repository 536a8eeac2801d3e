package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sanad-aid/registry-api/internal/core/domain"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

const defaultSettingsRefresh = 30 * time.Second

// SettingsService serves the global settings document through a
// bounded-staleness cache. Reads within the refresh interval are served
// from memory; the first read past it reloads from the repository. This
// replaces the older fetch-once-per-process behavior with a defined
// refresh policy.
type SettingsService struct {
	repo    ports.SettingsRepository
	refresh time.Duration
	log     zerolog.Logger

	mu       sync.Mutex
	cached   domain.Settings
	loadedAt time.Time
}

func NewSettingsService(repo ports.SettingsRepository, refresh time.Duration, log zerolog.Logger) *SettingsService {
	if refresh <= 0 {
		refresh = defaultSettingsRefresh
	}
	return &SettingsService{repo: repo, refresh: refresh, log: log}
}

// Current returns the settings, reloading them when the cache is stale.
// A failed reload falls back to the last good copy so a transient store
// outage never flips the maintenance flag or the password policy.
func (s *SettingsService) Current(ctx context.Context) (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loadedAt.IsZero() && time.Since(s.loadedAt) < s.refresh {
		return s.cached, nil
	}

	settings, err := s.repo.Load(ctx)
	if err != nil {
		if s.loadedAt.IsZero() {
			return domain.Settings{}, fmt.Errorf("settings: %w", err)
		}
		s.log.Warn().Err(err).Msg("settings reload failed, serving cached copy")
		return s.cached, nil
	}

	s.cached = settings
	s.loadedAt = time.Now()
	return settings, nil
}

// Public returns the anonymous-readable projection of the settings.
func (s *SettingsService) Public(ctx context.Context) (domain.PublicSettings, error) {
	settings, err := s.Current(ctx)
	if err != nil {
		return domain.PublicSettings{}, err
	}
	return settings.Public(), nil
}

// Update persists new settings. Root only; the cache is replaced
// immediately so the caller observes its own write.
func (s *SettingsService) Update(ctx context.Context, actor *domain.Identity, settings domain.Settings) error {
	if actor == nil || !actor.Classify().IsRoot {
		return domain.ErrForbidden
	}

	if err := s.repo.Save(ctx, settings); err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	s.mu.Lock()
	s.cached = settings
	s.loadedAt = time.Now()
	s.mu.Unlock()
	return nil
}
