package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// accessClaims is the signed claim set of an access token.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 tokens under two independent secrets.
// Access tokens carry {sub, role}; refresh tokens carry {sub} only, so a
// decoded refresh token can never stand in for an authorization decision.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenIssuer builds an issuer from the two secrets and lifetimes.
// Non-positive lifetimes fall back to 60 minutes / 7 days.
func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (t *TokenIssuer) IssueAccessToken(userID string, role domain.Role) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.accessTTL)),
			ID:        tokenID(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.accessSecret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (t *TokenIssuer) IssueRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.refreshTTL)),
		ID:        tokenID(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return signed, nil
}

func (t *TokenIssuer) VerifyAccessToken(token string) (*ports.AccessClaims, error) {
	var claims accessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, keyfunc(t.accessSecret))
	if err != nil {
		return nil, verifyError(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidToken
	}
	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &ports.AccessClaims{UserID: claims.Subject, Role: role}, nil
}

func (t *TokenIssuer) VerifyRefreshToken(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, keyfunc(t.refreshSecret))
	if err != nil {
		return "", verifyError(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}

// DecodeRefreshSubject checks the signature but not expiry. Logout needs the
// subject of an expired token to clear its stored session.
func (t *TokenIssuer) DecodeRefreshSubject(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, keyfunc(t.refreshSecret), jwt.WithoutClaimsValidation())
	if err != nil {
		return "", fmt.Errorf("decode refresh token: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("decode refresh token: empty subject")
	}
	return claims.Subject, nil
}

// tokenID returns a random jti. Without it, two tokens minted for the same
// subject within one second would be byte-identical and rotation would be a
// silent no-op.
func tokenID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

// keyfunc pins the signing algorithm to HS256 before releasing the secret.
func keyfunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	}
}

func verifyError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return domain.ErrExpiredToken
	}
	return domain.ErrInvalidToken
}
