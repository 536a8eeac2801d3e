package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanad-aid/registry-api/internal/api/middleware"
	"github.com/sanad-aid/registry-api/internal/core/domain"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

type SettingsHandler struct {
	settings ports.SettingsService
}

func NewSettingsHandler(settings ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Public returns the anonymous-readable settings: the maintenance flag
// and the password policy clients pre-validate against.
//
// @Summary      Public settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  domain.PublicSettings
// @Router       /settings/public [get]
func (h *SettingsHandler) Public(c echo.Context) error {
	public, err := h.settings.Public(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, public)
}

// Get returns the full settings document. Root only.
//
// @Summary      Global settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  domain.Settings
// @Router       /admin/settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	current, err := h.settings.Current(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, current)
}

// Update replaces the settings document. Root only; the service
// re-checks the actor so the rule holds even if routing changes.
//
// @Summary      Update global settings
// @Tags         settings
// @Accept       json
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /admin/settings [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req domain.Settings
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.settings.Update(c.Request().Context(), identity, req); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
