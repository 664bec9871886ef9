package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the claim set carried by Noteful auth tokens:
//
//	{ user: {id, username, fullname}, sub, iat, exp }
//
// The embedded user view is the only user data a token ever carries; the
// password digest cannot appear because UserView has no field for it.
type JWTClaims struct {
	jwt.RegisteredClaims
	User UserView `json:"user"`
}

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the embedded user's identifier
func (c *JWTClaims) UserID() string {
	return c.User.ID
}

// Username returns the embedded user's username, falling back to the subject
// claim when the view was issued without one.
func (c *JWTClaims) Username() string {
	if c.User.Username != "" {
		return c.User.Username
	}
	return c.Subject()
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
