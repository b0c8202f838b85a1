package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/locauto/rental-system/internal/core/domain"
)

// RequireRole enforces role-based access control. An empty allow-list means
// any authenticated principal passes.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := PrincipalFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			if len(allowed) > 0 {
				if _, ok := allowed[principal.Role]; !ok {
					return echo.NewHTTPError(http.StatusForbidden, "Unauthorized: insufficient permissions")
				}
			}
			return next(c)
		}
	}
}
