package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanad-aid/registry-api/internal/api/middleware"
	"github.com/sanad-aid/registry-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=head admin root"`
}

type updateUserRequest struct {
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=head admin root"`
	Phone       *string `json:"phone,omitempty"`
	Password    *string `json:"password,omitempty"`
	IsProtected *bool   `json:"isProtected,omitempty"`
}

// List returns every account for the user-management table.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.Identity
// @Router       /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	users, err := h.users.List(c.Request().Context(), identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Create registers an account with an explicit role.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      201  {object}  domain.Identity
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.users.Create(c.Request().Context(), identity, req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update edits an account under the protected-account rules.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      200  {object}  domain.Identity
// @Failure      403  {object}  map[string]string
// @Router       /admin/users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.users.Update(c.Request().Context(), identity, c.Param("id"), ports.UserUpdate{
		Role:        req.Role,
		Phone:       req.Phone,
		Password:    req.Password,
		IsProtected: req.IsProtected,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete removes an account under the protected-account rules.
//
// @Summary      Delete user
// @Tags         users
// @Success      204
// @Failure      403  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	if err := h.users.Delete(c.Request().Context(), identity, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
