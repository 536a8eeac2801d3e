package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanad-aid/registry-api/internal/api/metrics"
	"github.com/sanad-aid/registry-api/internal/api/middleware"
	"github.com/sanad-aid/registry-api/internal/core/domain"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    *middleware.SessionManager
}

func NewAuthHandler(authService ports.AuthService, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

type loginRequest struct {
	// Username is either a national-ID-shaped head identifier or a
	// free-form admin username; both travel in the same field.
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	NationalID  string `json:"national_id" validate:"required,numeric"`
	DisplayName string `json:"display_name" validate:"required"`
	Phone       string `json:"phone,omitempty"`
	Password    string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	Current string `json:"current" validate:"required"`
	Next    string `json:"next" validate:"required"`
}

type identityResponse struct {
	Identity *domain.Identity `json:"identity"`
}

// Login authenticates a credential and opens a cookie session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  identityResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if ae := domain.AsAuthError(err); ae != nil && ae.Kind == domain.KindLockedOut {
			metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		} else {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	if err := h.sessions.Issue(c, identity); err != nil {
		return err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.SessionsOpenedTotal.Inc()

	return c.JSON(http.StatusOK, identityResponse{Identity: identity})
}

// Register creates a household head account and opens a session for it.
//
// @Summary      Register a household
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Household registration details"
// @Success      201   {object}  identityResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		NationalID:  req.NationalID,
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Password:    req.Password,
	})
	if err != nil {
		var pe *domain.PolicyError
		if errors.As(err, &pe) {
			metrics.PolicyRejectionsTotal.Inc()
		}
		return err
	}

	if err := h.sessions.Issue(c, identity); err != nil {
		return err
	}
	metrics.SessionsOpenedTotal.Inc()

	return c.JSON(http.StatusCreated, identityResponse{Identity: identity})
}

// Logout revokes the session referenced by the cookie. Safe to repeat:
// a second call with a dead cookie still succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	metrics.SessionsRevokedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// Me returns the identity bound to the session cookie. The session
// middleware already resolved it; a missing session never reaches here.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  identityResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return c.JSON(http.StatusOK, identityResponse{Identity: identity})
}

// ChangePassword replaces the caller's password after verifying the
// current one against the live policy.
//
// @Summary      Change own password
// @Tags         auth
// @Accept       json
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /auth/password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.ChangePassword(c.Request().Context(), identity.ID, req.Current, req.Next); err != nil {
		var pe *domain.PolicyError
		if errors.As(err, &pe) {
			metrics.PolicyRejectionsTotal.Inc()
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
