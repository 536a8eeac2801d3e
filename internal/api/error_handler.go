package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sanad-aid/registry-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors. Kind
// and its detail fields are populated for classified login failures so
// clients switch on a machine-readable field, never on message text.
type errorResponse struct {
	Error             string             `json:"error"`
	Kind              domain.FailureKind `json:"kind,omitempty"`
	RemainingAttempts int                `json:"remainingAttempts,omitempty"`
	LockoutMinutes    int                `json:"lockoutMinutes,omitempty"`
	Violations        []domain.Violation `json:"violations,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Attaches the structured failure kind for classified login errors.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	// Classified login failures carry their kind to the client.
	if ae := domain.AsAuthError(err); ae != nil {
		return http.StatusUnauthorized, errorResponse{
			Error:             ae.Error(),
			Kind:              ae.Kind,
			RemainingAttempts: ae.RemainingAttempts,
			LockoutMinutes:    ae.LockoutMinutes,
		}
	}

	var pe *domain.PolicyError
	if errors.As(err, &pe) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:      pe.Error(),
			Violations: pe.Violations,
		}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrIdentityNotFound):
		return http.StatusNotFound, errorResponse{Error: "identity not found"}
	case errors.Is(err, domain.ErrIdentityExists):
		return http.StatusConflict, errorResponse{Error: "identity already exists"}
	case errors.Is(err, domain.ErrHouseholdNotFound):
		return http.StatusNotFound, errorResponse{Error: "household not found"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse{Error: "access forbidden"}
	case errors.Is(err, domain.ErrProtectedAccount):
		return http.StatusForbidden, errorResponse{Error: "account is protected"}
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, errorResponse{Error: "session expired"}
	case errors.Is(err, domain.ErrMaintenance):
		return http.StatusServiceUnavailable, errorResponse{Error: "service under maintenance"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}
