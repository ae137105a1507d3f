package auth

import (
	"context"
	"time"

	"github.com/taskboard/taskboard-api/internal/domain"
)

// Token kind values carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for the user.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID int64, role domain.Role) (string, error)

	// ValidateToken validates an access token string and extracts the
	// claims. Returns ErrWrongTokenType if a refresh token is presented.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)

	// GenerateRefreshToken creates a signed refresh token for the user.
	// Refresh tokens have a longer lifetime and are only good for
	// obtaining new token pairs.
	GenerateRefreshToken(ctx context.Context, userID int64, role domain.Role) (string, error)

	// ValidateRefreshToken validates a refresh token string and extracts
	// the claims. Returns ErrWrongTokenType if an access token is presented.
	ValidateRefreshToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the identity assertion extracted from a valid token: the
// subject's ID, role, and which kind of token carried them.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID int64 `json:"uid"`

	// Role is the actor class the token asserts.
	Role domain.Role `json:"role"`

	// TokenType indicates the purpose of the token ("access" or "refresh").
	TokenType string `json:"type"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
