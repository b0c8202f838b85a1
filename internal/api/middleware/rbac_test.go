package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/locauto/rental-system/internal/core/domain"
)

func callRequireRole(principal *domain.Principal, roles ...domain.Role) error {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if principal != nil {
		c.Set(principalKey, *principal)
	}

	handler := RequireRole(roles...)(func(c echo.Context) error { return nil })
	return handler(c)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	admin := &domain.Principal{ID: "u1", Role: domain.RoleAdmin}
	if err := callRequireRole(admin, domain.RoleAdmin); err != nil {
		t.Fatalf("admin rejected from an admin route: %v", err)
	}
}

func TestRequireRole_ForbidsOtherRoles(t *testing.T) {
	user := &domain.Principal{ID: "u1", Role: domain.RoleUser}
	err := callRequireRole(user, domain.RoleAdmin)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "Unauthorized: insufficient permissions" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestRequireRole_UnauthenticatedRequest(t *testing.T) {
	err := callRequireRole(nil, domain.RoleAdmin)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRequireRole_EmptyAllowListPassesAnyPrincipal(t *testing.T) {
	user := &domain.Principal{ID: "u1", Role: domain.RoleUser}
	if err := callRequireRole(user); err != nil {
		t.Fatalf("authenticated principal rejected by open gate: %v", err)
	}
}
