package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
	"github.com/locauto/rental-system/internal/pkg/password"
)

// UserService implements user administration. Route-level RBAC already gates
// the admin-only operations; the checks here cover the rules that depend on
// the relation between actor and target (self vs other, own role).
type UserService struct {
	users  ports.UserRepository
	hasher *password.Hasher
	audit  ports.AuditTrail
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher *password.Hasher, audit ports.AuditTrail, log zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, audit: audit, log: log}
}

func (s *UserService) Create(ctx context.Context, actor domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	if in.Name == "" || in.Password == "" {
		return nil, domain.ErrMissingCredentials
	}
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.recordEvent(actor.ID, domain.AuditUserCreated, user.ID)
	s.log.Info().Str("user_id", user.ID).Str("name", user.Name).Str("by", actor.ID).Msg("user created by admin")
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, actor domain.Principal, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && actor.ID != user.ID {
		return nil, domain.ErrForbidden
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Role != nil && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if actor.Role != domain.RoleAdmin && actor.ID != user.ID {
		return nil, domain.ErrForbidden
	}
	// Even an admin may not demote or promote itself.
	if in.Role != nil && actor.ID == user.ID && *in.Role != user.Role {
		return nil, domain.ErrSelfRoleChange
	}
	if in.Role != nil {
		if _, err := domain.ParseRole(string(*in.Role)); err != nil {
			return nil, err
		}
	}

	var fields ports.UpdateUserFields
	if in.Name != "" {
		fields.Name = &in.Name
	}
	if in.Password != "" {
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		fields.PasswordHash = &hash
	}
	if in.Role != nil && actor.Role == domain.RoleAdmin {
		fields.Role = in.Role
	}
	if fields.Name == nil && fields.PasswordHash == nil && fields.Role == nil {
		return nil, domain.ErrNoUpdateFields
	}

	updated, err := s.users.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	s.recordEvent(actor.ID, domain.AuditUserUpdated, updated.ID)
	s.log.Info().Str("user_id", updated.ID).Str("by", actor.ID).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Principal, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.ID == user.ID {
		return nil, domain.ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}

	s.recordEvent(actor.ID, domain.AuditUserDeleted, user.ID)
	s.log.Info().Str("user_id", user.ID).Str("name", user.Name).Str("by", actor.ID).Msg("user deleted")
	return user, nil
}

func (s *UserService) recordEvent(actor, action, subject string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{Actor: actor, Action: action, Subject: subject, At: time.Now().UTC()})
}
