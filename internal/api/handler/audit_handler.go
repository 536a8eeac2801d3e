package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanad-aid/registry-api/internal/core/ports"
)

type AuditHandler struct {
	audit ports.AuditRepository
}

func NewAuditHandler(audit ports.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns the most recent system log entries, newest first.
// Root only; the route is gated on the root capability.
//
// @Summary      System log
// @Tags         audit
// @Produce      json
// @Param        limit  query    int  false  "Maximum entries (default 100)"
// @Success      200  {array}  domain.AuditEntry
// @Router       /admin/logs [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	entries, err := h.audit.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
