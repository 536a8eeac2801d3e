package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanad-aid/registry-api/internal/api/middleware"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

type HouseholdHandler struct {
	households ports.HouseholdRepository
}

func NewHouseholdHandler(households ports.HouseholdRepository) *HouseholdHandler {
	return &HouseholdHandler{households: households}
}

// Mine returns the household registered under the caller's identity.
// The login flow uses this to greet a head by the household's display
// name instead of the raw identifier.
//
// @Summary      Household of the current identity
// @Tags         households
// @Produce      json
// @Success      200  {object}  domain.Household
// @Failure      404  {object}  map[string]string
// @Router       /households/mine [get]
func (h *HouseholdHandler) Mine(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	household, err := h.households.FindByNationalID(c.Request().Context(), identity.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, household)
}
