package ports

import "github.com/locauto/rental-system/internal/core/domain"

// AccessClaims is the verified content of an access token.
type AccessClaims struct {
	UserID string
	Role   domain.Role
}

// TokenIssuer mints and verifies the two token classes. Access and refresh
// tokens are signed with independent secrets so compromise of one class
// cannot forge the other. Refresh tokens carry identity only, never role.
type TokenIssuer interface {
	IssueAccessToken(userID string, role domain.Role) (string, error)
	IssueRefreshToken(userID string) (string, error)
	VerifyAccessToken(token string) (*AccessClaims, error)
	VerifyRefreshToken(token string) (string, error)
	// DecodeRefreshSubject extracts the subject of a refresh token checking
	// the signature but ignoring expiry. Used by logout, where the goal is to
	// erase server-side state even for a token past its lifetime.
	DecodeRefreshSubject(token string) (string, error)
}
