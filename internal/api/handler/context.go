package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locauto/rental-system/internal/api/middleware"
	"github.com/locauto/rental-system/internal/core/domain"
)

// ctxPrincipal extracts the principal attached by the Auth middleware.
// Its presence proves the middleware ran; a handler reached without it is a
// wiring bug surfaced as 401 rather than a nil dereference.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return principal, nil
}
