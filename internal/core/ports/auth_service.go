package ports

import (
	"context"

	"github.com/locauto/rental-system/internal/core/domain"
)

// TokenPair bundles the two credentials returned by every successful
// register, login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService drives the session lifecycle: registration, login, refresh
// token rotation and logout.
type AuthService interface {
	Register(ctx context.Context, name, password string) (*TokenPair, *domain.User, error)
	Login(ctx context.Context, name, password string) (*TokenPair, *domain.User, error)
	// Refresh rotates both tokens. The presented refresh token must match the
	// user's currently stored one; a superseded token fails even when its
	// signature and expiry are still valid.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Logout clears the stored refresh token, ending the session regardless
	// of the token's remaining cryptographic lifetime.
	Logout(ctx context.Context, refreshToken string) error
}
