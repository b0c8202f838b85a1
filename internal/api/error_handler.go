package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/locauto/rental-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// In development mode the underlying cause of a 500 is echoed back; in every
// other environment the client only sees a generic message.
func NewHTTPErrorHandler(log zerolog.Logger, development bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c, development)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, development bool) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Auth handlers map most
	// of these locally; this is the safety net for anything that escapes.
	switch {
	case errors.Is(err, domain.ErrMissingCredentials), errors.Is(err, domain.ErrMissingToken),
		errors.Is(err, domain.ErrNoUpdateFields), errors.Is(err, domain.ErrUnknownRole):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized, "Token expired"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, domain.ErrTokenSuperseded):
		return http.StatusForbidden, "Invalid refresh token"
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrSelfRoleChange),
		errors.Is(err, domain.ErrSelfDelete):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Username already exists"
	case errors.Is(err, domain.ErrVehicleExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusNotFound, "Vehicle not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	if development {
		return http.StatusInternalServerError, fmt.Sprintf("Internal server error: %v", err)
	}
	return http.StatusInternalServerError, "Internal server error"
}
