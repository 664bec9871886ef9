package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeMissingCredentials = "auth_missing_credentials"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeTokenMalformed     = "auth_token_malformed"
	TextCodeMissingToken       = "auth_missing_token"
	TextCodeUsernameTaken      = "auth_username_taken"
)

// ErrInvalidCredentials is returned for an unknown username or a wrong
// password. Both cases share one error so responses carry no signal a caller
// could use to enumerate usernames.
var ErrInvalidCredentials = errors.New("invalid username or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrMissingCredentials is returned when the login body is not an object with
// string username and password fields.
var ErrMissingCredentials = errors.New("missing or malformed credentials", errors.CategoryBadInput).
	WithTextCode(TextCodeMissingCredentials).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired is returned for tokens with a valid signature whose expiry
// is in the past. Externally it maps to the same 401 as ErrTokenMalformed;
// the distinction exists for logging only.
var ErrTokenExpired = errors.New("auth token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers bad signatures, disallowed algorithms, and
// structurally invalid tokens.
var ErrTokenMalformed = errors.New("auth token invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrMissingToken is returned when no bearer token is present on a request
// that requires one.
var ErrMissingToken = errors.New("missing authorization token", errors.CategoryAuth).
	WithTextCode(TextCodeMissingToken).
	WithCode(errors.CodeUnauthorized)

// ErrUsernameTaken is the conflict produced by the unique index on username,
// whether it surfaces at insert time or anywhere else.
var ErrUsernameTaken = errors.New("The username already exists", errors.CategoryConflict).
	WithTextCode(TextCodeUsernameTaken).
	WithCode(errors.CodeConflict)

// ErrNoEmptyString rejects hashing an empty password
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode("auth_empty_password")

// ValidationError builds the 422-class error for a single violated
// registration rule; the message is the client-visible body text.
func ValidationError(message string) *errors.Error {
	return errors.New(message, errors.CategoryValidation).
		WithTextCode("auth_validation_failed")
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsConflictError reports whether err is the duplicate-username conflict.
func IsConflictError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryConflict
	}
	return false
}

// isDuplicateKey sniffs driver-level unique constraint violations. sqlite and
// postgres spell them differently and neither exposes a portable sentinel.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "constraint failed: users.username")
}
