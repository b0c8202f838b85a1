package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type credentialsRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type sessionResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

// Register creates a new account with role "user" and opens a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login handle and password"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	pair, user, err := h.authService.Register(c.Request().Context(), req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Username and password are required"})
		case errors.Is(err, domain.ErrUserExists):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Username already exists"})
		}
		return err
	}

	return c.JSON(http.StatusCreated, sessionResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	})
}

// Login authenticates a user and opens a session, invalidating any previous
// refresh token for the account.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	pair, user, err := h.authService.Login(c.Request().Context(), req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingCredentials):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Username and password are required"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		}
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	})
}

// Refresh exchanges a valid refresh token for a brand-new token pair. The
// presented token is retired; replaying it afterwards fails.
//
// @Summary      Rotate the refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      refreshRequest  true  "Current refresh token"
// @Success      200   {object}  ports.TokenPair
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	pair, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingToken):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Refresh token is required"})
		case errors.Is(err, domain.ErrExpiredToken):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token expired"})
		case errors.Is(err, domain.ErrInvalidToken):
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		case errors.Is(err, domain.ErrTokenSuperseded):
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Invalid refresh token"})
		}
		return err
	}

	return c.JSON(http.StatusOK, pair)
}

// Logout clears the stored refresh token, ending the session.
//
// @Summary      Logout
// @Tags         auth
// @Accept       json
// @Param        body  body      refreshRequest  true  "Refresh token of the session to end"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		if errors.Is(err, domain.ErrMissingToken) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Refresh token is required"})
		}
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
