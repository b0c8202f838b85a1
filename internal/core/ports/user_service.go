package ports

import (
	"context"

	"github.com/locauto/rental-system/internal/core/domain"
)

// CreateUserInput is an admin-invoked account creation; unlike self-service
// registration the role is selectable.
type CreateUserInput struct {
	Name     string
	Password string
	Role     domain.Role
}

// UpdateUserInput carries a partial user update. Empty strings mean "leave
// unchanged"; Role is nil when not supplied.
type UpdateUserInput struct {
	Name     string
	Password string
	Role     *domain.Role
}

// UserService implements user administration. Operations that mix admin and
// self-service access take the acting principal explicitly.
type UserService interface {
	Create(ctx context.Context, actor domain.Principal, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, actor domain.Principal, id string) (*domain.User, error)
	Update(ctx context.Context, actor domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Principal, id string) (*domain.User, error)
}
