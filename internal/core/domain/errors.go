package domain

import "errors"

// Auth and session errors.
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrMissingToken = errors.New("refresh token is required")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	// ErrTokenSuperseded means the presented refresh token is cryptographically
	// valid but no longer matches the stored one (rotated out or logged out).
	ErrTokenSuperseded = errors.New("invalid refresh token")

	ErrUnknownRole    = errors.New("unknown role")
	ErrForbidden      = errors.New("insufficient permissions")
	ErrSelfRoleChange = errors.New("cannot change your own role")
	ErrSelfDelete     = errors.New("cannot delete your own account")
	ErrNoUpdateFields = errors.New("no valid fields to update")
)

// Vehicle errors.
var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrVehicleExists   = errors.New("vehicle with this registration already exists")
	ErrMissingVehicle  = errors.New("make, model and registration are required")
)
