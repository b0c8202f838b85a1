package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/locauto/rental-system/internal/api/metrics"
	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
	"github.com/locauto/rental-system/internal/pkg/password"
)

// AuthService orchestrates the session lifecycle. A user holds at most one
// valid refresh token at a time: every register/login/refresh overwrites the
// stored fingerprint, logout clears it. Reuse of a rotated-out token is
// therefore detectable even while the token is cryptographically valid.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	hasher *password.Hasher
	audit  ports.AuditTrail
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, hasher *password.Hasher, audit ports.AuditTrail, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, hasher: hasher, audit: audit, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, pass string) (*ports.TokenPair, *domain.User, error) {
	if name == "" || pass == "" {
		return nil, nil, domain.ErrMissingCredentials
	}

	if _, err := s.users.FindByName(ctx, name); err == nil {
		return nil, nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return nil, nil, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Unique index on name closes the check-then-create race.
		return nil, nil, err
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.record(user.ID, domain.AuditRegister, user.ID)
	s.log.Info().Str("user_id", user.ID).Str("name", user.Name).Msg("user registered")
	return pair, user, nil
}

func (s *AuthService) Login(ctx context.Context, name, pass string) (*ports.TokenPair, *domain.User, error) {
	if name == "" || pass == "" {
		return nil, nil, domain.ErrMissingCredentials
	}

	user, err := s.users.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Indistinguishable from a wrong password: no username oracle.
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(user.ID, domain.AuditLogin, user.ID)
	s.log.Info().Str("user_id", user.ID).Str("name", user.Name).Msg("user logged in")
	return pair, user, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	if refreshToken == "" {
		return nil, domain.ErrMissingToken
	}

	userID, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		metrics.TokenRefreshTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.TokenRefreshTotal.WithLabelValues("invalid").Inc()
			return nil, domain.ErrTokenSuperseded
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}

	if !fingerprintMatches(refreshToken, user.RefreshTokenHash) {
		// A cryptographically valid token the server no longer recognises:
		// either rotated out, or cleared by logout. Possible theft replay.
		metrics.TokenRefreshTotal.WithLabelValues("superseded").Inc()
		s.log.Warn().Str("user_id", user.ID).Msg("superseded refresh token presented")
		return nil, domain.ErrTokenSuperseded
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.TokenRefreshTotal.WithLabelValues("success").Inc()
	s.record(user.ID, domain.AuditRefresh, user.ID)
	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return domain.ErrMissingToken
	}

	// Expiry is deliberately not checked: logging out with an expired token
	// must still clear the stored session.
	userID, err := s.tokens.DecodeRefreshSubject(refreshToken)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, userID, ""); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.record(userID, domain.AuditLogout, userID)
	s.log.Info().Str("user_id", userID).Msg("user logged out")
	return nil
}

// startSession issues a fresh token pair and persists the refresh token's
// fingerprint, invalidating whatever token was stored before.
func (s *AuthService) startSession(ctx context.Context, user *domain.User) (*ports.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.users.UpdateRefreshToken(ctx, user.ID, fingerprint(refresh)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}
	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) record(actor, action, subject string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{Actor: actor, Action: action, Subject: subject, At: time.Now().UTC()})
}

// fingerprint is the stored form of a refresh token: only the SHA-256 digest
// is persisted, so a leaked database row cannot be replayed as a token.
func fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func fingerprintMatches(token, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(fingerprint(token)), []byte(storedHash)) == 1
}
