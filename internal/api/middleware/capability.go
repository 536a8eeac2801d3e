package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

// RequireCapability gates a route on the identity's derived capability
// set: any one of the listed capabilities grants access. The derivation
// runs on the identity loaded for this request, so a dual-role admin
// passes both head-scoped and admin-scoped routes.
func RequireCapability(required ...domain.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := CurrentIdentity(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}

			caps := identity.Classify()
			for _, r := range required {
				if caps.Has(r) {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
