package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
)

// UserHandler handles HTTP requests for user administration.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type updateUserRequest struct {
	Name     string  `json:"name,omitempty"`
	Password string  `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// Me returns the profile of the authenticated user.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), principal, principal.ID)
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Create adds a user account with a selectable role. Admin only.
//
// @Summary      Create a user (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	user, err := h.service.Create(c.Request().Context(), principal, ports.CreateUserInput{
		Name:     req.Name,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name and password are required"})
		case errors.Is(err, domain.ErrUnknownRole):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return userError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

// List returns all user accounts. Admin only.
//
// @Summary      List users (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns a user by id; allowed for admins and the user itself.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.Get(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Update modifies a user; admins may edit anyone, users only themselves, and
// nobody may change their own role.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	in := ports.UpdateUserInput{Name: req.Name, Password: req.Password}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}

	user, err := h.service.Update(c.Request().Context(), principal, c.Param("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoUpdateFields):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "No valid fields to update"})
		case errors.Is(err, domain.ErrUnknownRole):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrSelfRoleChange):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Cannot change your own role"})
		}
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Delete removes a user account. Admin only; self-deletion is rejected.
//
// @Summary      Delete a user (admin)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.service.Delete(c.Request().Context(), principal, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrSelfDelete) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Cannot delete your own account"})
		}
		return userError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": user.Name + " has been successfully deleted"})
}

// userError maps the shared user-domain failures to their HTTP shape.
func userError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
	case errors.Is(err, domain.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Unauthorized access"})
	case errors.Is(err, domain.ErrUserExists):
		return c.JSON(http.StatusConflict, map[string]string{"error": "Username already in use"})
	}
	return err
}
