package auth

import (
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// Password policy bounds. The upper bound tracks bcrypt's 72-byte input
// limit; see HashPassword.
const (
	PasswordMinLength = 8
	PasswordMaxLength = 72
)

// RegistrationCreatePayload is the raw registration body. Fields stay as
// json.RawMessage so the validator can tell a missing key from a wrong type,
// which plain struct binding cannot.
type RegistrationCreatePayload struct {
	Username json.RawMessage `json:"username"`
	Password json.RawMessage `json:"password"`
	Fullname json.RawMessage `json:"fullname"`
}

// Validate applies the registration rule set in a fixed order and returns on
// the first violation, so error messages are deterministic:
//
//  1. username present
//  2. password present
//  3. username is a string
//  4. password is a string
//  5. username has no edge whitespace
//  6. password has no edge whitespace
//  7. password at least 8 characters
//  8. password at most 72 characters
//
// All violations are validation errors (422); uniqueness is not checked here,
// the store's unique index is the single authority on that (see
// RegisterUserHandler).
func (p RegistrationCreatePayload) Validate() (RegisterUserMessage, error) {
	var msg RegisterUserMessage

	for _, field := range []struct {
		name string
		raw  json.RawMessage
	}{
		{"username", p.Username},
		{"password", p.Password},
	} {
		if isMissingField(field.raw) {
			return msg, ValidationError(fmt.Sprintf("Missing '%s' in request body", field.name))
		}
	}

	username, ok := rawString(p.Username)
	if !ok {
		return msg, ValidationError("Field: 'username' must be type String")
	}

	password, ok := rawString(p.Password)
	if !ok {
		return msg, ValidationError("Field: 'password' must be type String")
	}

	if err := validation.Validate(username,
		validation.By(noEdgeWhitespace("username")),
	); err != nil {
		return msg, asValidationError(err)
	}

	if err := validation.Validate(password,
		validation.By(noEdgeWhitespace("password")),
		// minimum counts characters, maximum counts bytes: the lower bound is
		// user-facing policy, the upper bound guards bcrypt's 72-byte input limit
		validation.RuneLength(PasswordMinLength, 0).
			Error(fmt.Sprintf("Field: 'password' must be at least %d characters long", PasswordMinLength)),
		validation.Length(0, PasswordMaxLength).
			Error(fmt.Sprintf("Field: 'password' must be at most %d characters long", PasswordMaxLength)),
	); err != nil {
		return msg, asValidationError(err)
	}

	msg.Username = username
	msg.Password = password
	msg.Fullname = NormalizeFullname(optionalString(p.Fullname))

	return msg, nil
}

// isMissingField treats an absent key, an explicit null, and an empty string
// as missing, matching the upstream API's falsy-value semantics.
func isMissingField(raw json.RawMessage) bool {
	if raw == nil || string(raw) == "null" {
		return true
	}
	if s, ok := rawString(raw); ok && s == "" {
		return true
	}
	return false
}

func rawString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// optionalString returns the string value of an optional field, or "" when
// the field is absent or not a string. Optional fields are never validated.
func optionalString(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	s, _ := rawString(raw)
	return s
}

func noEdgeWhitespace(field string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != strings.TrimSpace(s) {
			return fmt.Errorf("Field: '%s' cannot start or end with whitespace", field)
		}
		return nil
	}
}

// asValidationError lifts an ozzo rule failure into the 422 taxonomy while
// preserving the rule's message verbatim.
func asValidationError(err error) *errors.Error {
	if err == nil {
		return nil
	}
	return ValidationError(err.Error())
}
