package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds auth options. The signing key and algorithm are process-wide
// and loaded once at startup; nothing here mutates after boot.
type Config interface {
	GetSigningKey() string
	GetSigningMethod() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetAuthScheme() string
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
	Refresh(ctx context.Context, rawToken string) (string, error)
}

// TokenService issues and verifies auth tokens
type TokenService interface {
	Generate(view UserView, subject string) (string, error)
	SignClaims(claims *JWTClaims) (string, error)
	Validate(tokenString string) (*JWTClaims, error)
	Reissue(claims *JWTClaims) (string, error)
}

// UserFinder is the read side of the user store needed for login
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// defLogger is the fallback used when no Logger is injected. Call sites pass
// a message followed by key/value pairs, matching the slog convention.
type defLogger struct{}

func (d defLogger) Error(msg string, args ...any) { logLine("ERR", msg, args) }
func (d defLogger) Warn(msg string, args ...any)  { logLine("WRN", msg, args) }
func (d defLogger) Info(msg string, args ...any)  { logLine("INF", msg, args) }
func (d defLogger) Debug(msg string, args ...any) { logLine("DBG", msg, args) }

func logLine(level, msg string, args []any) {
	if len(args) == 0 {
		fmt.Printf("[%s] AUTH %s\n", level, msg)
		return
	}
	fmt.Printf("[%s] AUTH %s %v\n", level, msg, args)
}
