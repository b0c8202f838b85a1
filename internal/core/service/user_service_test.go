package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
	"github.com/locauto/rental-system/internal/pkg/password"
)

func newTestUserService(repo *stubUserRepo) *UserService {
	return NewUserService(repo, password.NewHasher(bcrypt.MinCost), nil, zerolog.Nop())
}

// seedUser inserts a user directly through the repo so tests do not depend on
// the auth flow.
func seedUser(t *testing.T, repo *stubUserRepo, name string, role domain.Role) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &domain.User{Name: name, PasswordHash: "x", Role: role})
	if err != nil {
		t.Fatalf("seed user %q: %v", name, err)
	}
	return u
}

func TestUserService_Create(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	admin := domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}

	user, err := svc.Create(context.Background(), admin, ports.CreateUserInput{Name: "staff", Password: "pw"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected role to default to %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "pw" {
		t.Fatalf("password stored in the clear")
	}

	elevated, err := svc.Create(context.Background(), admin, ports.CreateUserInput{Name: "boss", Password: "pw", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	if elevated.Role != domain.RoleAdmin {
		t.Fatalf("role not honored: %q", elevated.Role)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)
	admin := domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}

	if _, err := svc.Create(context.Background(), admin, ports.CreateUserInput{Name: "", Password: "pw"}); err != domain.ErrMissingCredentials {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, ports.CreateUserInput{Name: "x", Password: "pw", Role: domain.Role("owner")}); !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}

	seedUser(t, repo, "taken", domain.RoleUser)
	if _, err := svc.Create(context.Background(), admin, ports.CreateUserInput{Name: "taken", Password: "pw"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Get_AccessControl(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	alice := seedUser(t, repo, "alice", domain.RoleUser)
	bob := seedUser(t, repo, "bob", domain.RoleUser)

	// A user may read itself.
	if _, err := svc.Get(context.Background(), alice.Principal(), alice.ID); err != nil {
		t.Fatalf("self read failed: %v", err)
	}
	// But not another user.
	if _, err := svc.Get(context.Background(), alice.Principal(), bob.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// An admin may read anyone.
	admin := domain.Principal{ID: "admin-1", Role: domain.RoleAdmin}
	if _, err := svc.Get(context.Background(), admin, bob.ID); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Update_RoleGuards(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	alice := seedUser(t, repo, "alice", domain.RoleUser)
	root := seedUser(t, repo, "root", domain.RoleAdmin)
	adminRole := domain.RoleAdmin

	// A non-admin may not touch roles, even its own.
	if _, err := svc.Update(context.Background(), alice.Principal(), alice.ID, ports.UpdateUserInput{Role: &adminRole}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// An admin may not change its own role.
	userRole := domain.RoleUser
	if _, err := svc.Update(context.Background(), root.Principal(), root.ID, ports.UpdateUserInput{Role: &userRole}); err != domain.ErrSelfRoleChange {
		t.Fatalf("expected ErrSelfRoleChange, got %v", err)
	}
	// But may promote someone else.
	updated, err := svc.Update(context.Background(), root.Principal(), alice.ID, ports.UpdateUserInput{Role: &adminRole})
	if err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role not updated: %q", updated.Role)
	}
}

func TestUserService_Update_SelfService(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	alice := seedUser(t, repo, "alice", domain.RoleUser)
	bob := seedUser(t, repo, "bob", domain.RoleUser)

	// A user may rename itself.
	updated, err := svc.Update(context.Background(), alice.Principal(), alice.ID, ports.UpdateUserInput{Name: "alice2"})
	if err != nil {
		t.Fatalf("self rename failed: %v", err)
	}
	if updated.Name != "alice2" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	// But not someone else.
	if _, err := svc.Update(context.Background(), alice.Principal(), bob.ID, ports.UpdateUserInput{Name: "hijack"}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	// An empty update is rejected.
	if _, err := svc.Update(context.Background(), alice.Principal(), alice.ID, ports.UpdateUserInput{}); err != domain.ErrNoUpdateFields {
		t.Fatalf("expected ErrNoUpdateFields, got %v", err)
	}
	// Renaming onto a taken name fails.
	if _, err := svc.Update(context.Background(), alice.Principal(), alice.ID, ports.UpdateUserInput{Name: "bob"}); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_HashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	alice := seedUser(t, repo, "alice", domain.RoleUser)

	updated, err := svc.Update(context.Background(), alice.Principal(), alice.ID, ports.UpdateUserInput{Password: "newpass"})
	if err != nil {
		t.Fatalf("password update failed: %v", err)
	}
	if updated.PasswordHash == "newpass" || updated.PasswordHash == "x" {
		t.Fatalf("password not rehashed: %q", updated.PasswordHash)
	}
}

func TestUserService_Delete(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestUserService(repo)

	root := seedUser(t, repo, "root", domain.RoleAdmin)
	alice := seedUser(t, repo, "alice", domain.RoleUser)

	// Even an admin may not delete itself.
	if _, err := svc.Delete(context.Background(), root.Principal(), root.ID); err != domain.ErrSelfDelete {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}

	deleted, err := svc.Delete(context.Background(), root.Principal(), alice.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted.Name != "alice" {
		t.Fatalf("unexpected deleted user: %+v", deleted)
	}
	if _, err := repo.FindByID(context.Background(), alice.ID); err != domain.ErrUserNotFound {
		t.Fatalf("user still present after delete: %v", err)
	}

	if _, err := svc.Delete(context.Background(), root.Principal(), "missing"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
