package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
)

// principalKey is the context key under which Auth stores the typed principal.
const principalKey = "auth.principal"

// AccessTokenVerifier is the slice of the token issuer the gate needs.
type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (*ports.AccessClaims, error)
}

// PrincipalLoader re-loads the live user a token subject refers to.
type PrincipalLoader interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Auth verifies the bearer access token and attaches the live principal to
// the request context. The user is re-loaded from the store on every request,
// so deletions and role changes take effect before the token's natural expiry.
func Auth(tokens AccessTokenVerifier, users PrincipalLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if authHeader == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token is required")
			}

			claims, err := tokens.VerifyAccessToken(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrExpiredToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return echo.NewHTTPError(http.StatusForbidden, "Invalid token: user not found")
				}
				return err
			}

			SetPrincipal(c, user.Principal())
			return next(c)
		}
	}
}

// SetPrincipal attaches a principal to the request context.
func SetPrincipal(c echo.Context, p domain.Principal) {
	c.Set(principalKey, p)
}

// PrincipalFrom returns the principal attached by Auth, if any.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}
