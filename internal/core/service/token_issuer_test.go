package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/locauto/rental-system/internal/core/domain"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestTokenIssuer_AccessRoundTrip(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.IssueAccessToken("u1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}

	claims, err := issuer.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if claims.UserID != "u1" {
		t.Fatalf("unexpected subject: %s", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestTokenIssuer_RefreshRoundTrip(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.IssueRefreshToken("u1")
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}

	sub, err := issuer.VerifyRefreshToken(token)
	if err != nil {
		t.Fatalf("verify refresh token: %v", err)
	}
	if sub != "u1" {
		t.Fatalf("unexpected subject: %s", sub)
	}
}

func TestTokenIssuer_RefreshCarriesNoRole(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.IssueRefreshToken("u1")
	if err != nil {
		t.Fatalf("issue refresh token: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("decode refresh token: %v", err)
	}
	if _, ok := claims["role"]; ok {
		t.Fatalf("refresh token claims include a role: %v", claims)
	}
}

func TestTokenIssuer_SecretsAreIndependent(t *testing.T) {
	issuer := testIssuer()

	access, _ := issuer.IssueAccessToken("u1", domain.RoleUser)
	refresh, _ := issuer.IssueRefreshToken("u1")

	if _, err := issuer.VerifyRefreshToken(access); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("access token verified as refresh token: %v", err)
	}
	if _, err := issuer.VerifyAccessToken(refresh); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("refresh token verified as access token: %v", err)
	}
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := testIssuer()
	issuer.accessTTL = -time.Minute
	issuer.refreshTTL = -time.Minute

	access, _ := issuer.IssueAccessToken("u1", domain.RoleUser)
	if _, err := issuer.VerifyAccessToken(access); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}

	refresh, _ := issuer.IssueRefreshToken("u1")
	if _, err := issuer.VerifyRefreshToken(refresh); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenIssuer_DecodeRefreshSubjectIgnoresExpiry(t *testing.T) {
	issuer := testIssuer()
	issuer.refreshTTL = -time.Minute

	expired, _ := issuer.IssueRefreshToken("u1")
	sub, err := issuer.DecodeRefreshSubject(expired)
	if err != nil {
		t.Fatalf("decode expired refresh token: %v", err)
	}
	if sub != "u1" {
		t.Fatalf("unexpected subject: %s", sub)
	}

	// Signature checks still apply even on the logout path.
	if _, err := issuer.DecodeRefreshSubject("garbage"); err == nil {
		t.Fatalf("expected error for undecodable token")
	}
	other := NewTokenIssuer("access-secret", "other-refresh-secret", time.Hour, time.Hour)
	foreign, _ := other.IssueRefreshToken("u1")
	if _, err := issuer.DecodeRefreshSubject(foreign); err == nil {
		t.Fatalf("expected error for token signed with a foreign secret")
	}
}

func TestTokenIssuer_InvalidToken(t *testing.T) {
	issuer := testIssuer()

	if _, err := issuer.VerifyAccessToken("not-a-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := issuer.VerifyRefreshToken(""); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenIssuer_UnknownRoleRejected(t *testing.T) {
	issuer := testIssuer()

	token, err := issuer.IssueAccessToken("u1", domain.Role("superuser"))
	if err != nil {
		t.Fatalf("issue access token: %v", err)
	}
	if _, err := issuer.VerifyAccessToken(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}
}

func TestTokenIssuer_RotationProducesDistinctTokens(t *testing.T) {
	issuer := testIssuer()

	t1, _ := issuer.IssueRefreshToken("u1")
	t2, _ := issuer.IssueRefreshToken("u1")
	if t1 == t2 {
		t.Fatalf("two refresh tokens minted back to back are identical")
	}
}
