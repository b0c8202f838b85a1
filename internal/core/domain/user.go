package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// User models an account in the system. PasswordHash and RefreshTokenHash
// never leave the server.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	PasswordHash     string    `json:"-"`
	Role             Role      `json:"role"`
	RefreshTokenHash string    `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Principal is the authenticated identity a request acts as. It is built by
// the auth middleware from a live user record, never from token claims alone.
type Principal struct {
	ID   string
	Role Role
}

// Principal derives the request identity from a user record.
func (u *User) Principal() Principal {
	return Principal{ID: u.ID, Role: u.Role}
}
