package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

type fixedSettings struct {
	settings domain.Settings
	err      error
}

func (s *fixedSettings) Current(_ context.Context) (domain.Settings, error) {
	return s.settings, s.err
}

func (s *fixedSettings) Public(_ context.Context) (domain.PublicSettings, error) {
	return s.settings.Public(), s.err
}

func (s *fixedSettings) Update(_ context.Context, _ *domain.Identity, settings domain.Settings) error {
	s.settings = settings
	return nil
}

func maintenanceOn() *fixedSettings {
	return &fixedSettings{settings: domain.Settings{Maintenance: true}}
}

func TestMaintenance_BlocksAnonymous(t *testing.T) {
	c, _ := contextWithIdentity(nil)

	handler := Maintenance(maintenanceOn())(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrMaintenance) {
		t.Fatalf("expected maintenance error, got %v", err)
	}
}

func TestMaintenance_BlocksHead(t *testing.T) {
	c, _ := contextWithIdentity(&domain.Identity{Username: "405857004", Role: domain.RoleHead})

	handler := Maintenance(maintenanceOn())(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrMaintenance) {
		t.Fatalf("expected maintenance error, got %v", err)
	}
}

func TestMaintenance_AdmitsAdminAndRoot(t *testing.T) {
	for _, role := range []string{domain.RoleAdmin, domain.RoleRoot} {
		c, rec := contextWithIdentity(&domain.Identity{Username: "supervisor", Role: role})
		handler := Maintenance(maintenanceOn())(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("%s should pass maintenance gate: %v", role, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", role, rec.Code)
		}
	}
}

func TestMaintenance_OffPassesEveryone(t *testing.T) {
	c, rec := contextWithIdentity(nil)
	handler := Maintenance(&fixedSettings{})(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMaintenance_SettingsOutageFailsOpen(t *testing.T) {
	c, rec := contextWithIdentity(nil)
	broken := &fixedSettings{err: errors.New("store down")}
	handler := Maintenance(broken)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
