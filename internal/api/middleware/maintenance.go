package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sanad-aid/registry-api/internal/api/metrics"
	"github.com/sanad-aid/registry-api/internal/core/domain"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

// Maintenance suspends non-privileged traffic while the global
// maintenance flag is set. Admin and root identities pass; everyone else
// gets a 503. The login surface is mounted outside this middleware so
// privileged users can still sign in to lift the flag.
func Maintenance(settings ports.SettingsService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			current, err := settings.Current(c.Request().Context())
			if err != nil {
				// Settings store outage must not take the whole API down.
				return next(c)
			}
			if !current.Maintenance {
				return next(c)
			}

			if identity, ok := CurrentIdentity(c); ok && identity.Classify().IsAdmin {
				return next(c)
			}

			metrics.MaintenanceRejectionsTotal.Inc()
			return domain.ErrMaintenance
		}
	}
}
