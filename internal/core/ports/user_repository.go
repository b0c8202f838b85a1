package ports

import (
	"context"

	"github.com/locauto/rental-system/internal/core/domain"
)

// UpdateUserFields carries the mutable user fields for a partial update.
// Nil pointers mean "leave unchanged".
type UpdateUserFields struct {
	Name         *string
	PasswordHash *string
	Role         *domain.Role
}

// UserRepository defines persistence for user accounts. UpdateRefreshToken
// must be a single statement keyed by id: concurrent session operations on
// the same user are serialized by the store, not by this codebase.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByName(ctx context.Context, name string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, fields UpdateUserFields) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// UpdateRefreshToken stores the fingerprint of the currently valid
	// refresh token. An empty value clears the session.
	UpdateRefreshToken(ctx context.Context, id, tokenHash string) error
}
