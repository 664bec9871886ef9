package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// ErrorResponse is the JSON error body of every auth endpoint.
type ErrorResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the success body of login and refresh.
type TokenResponse struct {
	AuthToken string `json:"authToken"`
}

// BearerTokenFromContext extracts the raw token from the Authorization
// request header. Returns "" for a missing header or a non-matching scheme.
func BearerTokenFromContext(ctx router.Context, authScheme string) string {
	header := ctx.Header(router.HeaderAuthorization)
	if header == "" {
		return ""
	}

	if authScheme == "" {
		authScheme = "Bearer"
	}
	authScheme = strings.TrimSpace(authScheme)

	l := len(authScheme)
	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) {
		return strings.TrimSpace(header[l:])
	}

	return ""
}

// statusForError maps the error taxonomy onto the HTTP contract:
// validation 422, conflict 400, auth 401, everything else 500. The conflict
// status is 400 rather than 409 because that is the Noteful API's published
// contract for duplicate usernames.
func statusForError(err error) int {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return fiber.StatusInternalServerError
	}

	switch richErr.Category {
	case errors.CategoryValidation:
		return fiber.StatusUnprocessableEntity
	case errors.CategoryConflict:
		return fiber.StatusBadRequest
	case errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryAuth, errors.CategoryAuthz:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// messageForError picks the client-visible message. Auth failures get a
// neutral line regardless of the internal reason, so the response never
// distinguishes bad signatures from expired tokens or unknown usernames from
// wrong passwords.
func messageForError(err error) string {
	status := statusForError(err)

	if status == fiber.StatusUnauthorized {
		return "Unauthorized"
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && status != fiber.StatusInternalServerError {
		return richErr.Message
	}

	return "Internal Server Error"
}
