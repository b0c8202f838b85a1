package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
)

type stubVerifier struct {
	claims *ports.AccessClaims
	err    error
}

func (s *stubVerifier) VerifyAccessToken(string) (*ports.AccessClaims, error) {
	return s.claims, s.err
}

type stubLoader struct {
	user *domain.User
	err  error
}

func (s *stubLoader) FindByID(context.Context, string) (*domain.User, error) {
	return s.user, s.err
}

func callAuth(t *testing.T, verifier AccessTokenVerifier, loader PrincipalLoader, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(verifier, loader)(func(c echo.Context) error { return nil })
	return c, handler(c)
}

func TestAuth_AttachesPrincipal(t *testing.T) {
	verifier := &stubVerifier{claims: &ports.AccessClaims{UserID: "u1", Role: domain.RoleAdmin}}
	loader := &stubLoader{user: &domain.User{ID: "u1", Name: "alice", Role: domain.RoleAdmin}}

	c, err := callAuth(t, verifier, loader, "Bearer good-token")
	if err != nil {
		t.Fatalf("auth rejected a valid request: %v", err)
	}

	principal, ok := PrincipalFrom(c)
	if !ok {
		t.Fatalf("no principal attached")
	}
	if principal.ID != "u1" || principal.Role != domain.RoleAdmin {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestAuth_MissingOrMalformedHeader(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrInvalidToken}
	loader := &stubLoader{err: domain.ErrUserNotFound}

	for _, header := range []string{"", "Bearer", "Basic dXNlcg==", "token-without-scheme"} {
		_, err := callAuth(t, verifier, loader, header)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
		if he.Message != "Access token is required" {
			t.Fatalf("header %q: unexpected message %v", header, he.Message)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrInvalidToken}
	_, err := callAuth(t, verifier, &stubLoader{}, "Bearer junk")

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized || he.Message != "Invalid token" {
		t.Fatalf("expected 401 Invalid token, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	verifier := &stubVerifier{err: domain.ErrExpiredToken}
	_, err := callAuth(t, verifier, &stubLoader{}, "Bearer stale")

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized || he.Message != "Token expired" {
		t.Fatalf("expected 401 Token expired, got %v", err)
	}
}

func TestAuth_DeletedUser(t *testing.T) {
	// A syntactically valid token whose subject no longer exists is refused.
	verifier := &stubVerifier{claims: &ports.AccessClaims{UserID: "gone", Role: domain.RoleUser}}
	loader := &stubLoader{err: domain.ErrUserNotFound}

	_, err := callAuth(t, verifier, loader, "Bearer orphan")
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	if he.Message != "Invalid token: user not found" {
		t.Fatalf("unexpected message: %v", he.Message)
	}
}

func TestAuth_RoleComesFromStore(t *testing.T) {
	// A demotion takes effect immediately even if the token still claims admin.
	verifier := &stubVerifier{claims: &ports.AccessClaims{UserID: "u1", Role: domain.RoleAdmin}}
	loader := &stubLoader{user: &domain.User{ID: "u1", Role: domain.RoleUser}}

	c, err := callAuth(t, verifier, loader, "Bearer demoted")
	if err != nil {
		t.Fatalf("auth failed: %v", err)
	}
	principal, _ := PrincipalFrom(c)
	if principal.Role != domain.RoleUser {
		t.Fatalf("principal kept the stale token role: %v", principal.Role)
	}
}
