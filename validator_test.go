package auth_test

import (
	"encoding/json"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	auth "github.com/goliatone/noteful-auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodePayload(t *testing.T, body string) auth.RegistrationCreatePayload {
	t.Helper()
	var payload auth.RegistrationCreatePayload
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	return payload
}

func TestRegistrationValidateRuleOrder(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "missing username",
			body:    `{"password":"examplePass","fullname":"Example User"}`,
			wantErr: "Missing 'username' in request body",
		},
		{
			name:    "empty username counts as missing",
			body:    `{"username":"","password":"examplePass"}`,
			wantErr: "Missing 'username' in request body",
		},
		{
			name:    "null username counts as missing",
			body:    `{"username":null,"password":"examplePass"}`,
			wantErr: "Missing 'username' in request body",
		},
		{
			name:    "missing password",
			body:    `{"username":"exampleUser","fullname":"Example User"}`,
			wantErr: "Missing 'password' in request body",
		},
		{
			name:    "non-string username",
			body:    `{"username":123,"password":"examplePass"}`,
			wantErr: "Field: 'username' must be type String",
		},
		{
			name:    "non-string password",
			body:    `{"username":"exampleUser","password":123}`,
			wantErr: "Field: 'password' must be type String",
		},
		{
			name:    "username with leading whitespace",
			body:    `{"username":" exampleUser","password":"examplePass"}`,
			wantErr: "Field: 'username' cannot start or end with whitespace",
		},
		{
			name:    "username with trailing whitespace",
			body:    `{"username":"exampleUser ","password":"examplePass"}`,
			wantErr: "Field: 'username' cannot start or end with whitespace",
		},
		{
			name:    "password with edge whitespace",
			body:    `{"username":"exampleUser","password":" examplePass "}`,
			wantErr: "Field: 'password' cannot start or end with whitespace",
		},
		{
			name:    "password too short",
			body:    `{"username":"exampleUser","password":"p234567"}`,
			wantErr: "Field: 'password' must be at least 8 characters long",
		},
		{
			name: "multibyte password shorter than 8 characters",
			// 7 characters, 14 bytes: the minimum counts characters
			body:    `{"username":"exampleUser","password":"ééééééé"}`,
			wantErr: "Field: 'password' must be at least 8 characters long",
		},
		{
			name: "password too long",
			body: `{"username":"exampleUser","password":"` +
				"ppppppppppppppppppppppppppppppppppppppppppppppppppppppppppppppppppppppppp" + `"}`,
			wantErr: "Field: 'password' must be at most 72 characters long",
		},
		{
			name: "missing username wins over bad password",
			body: `{"password":123}`,
			// rule 1 fires before the password type rule
			wantErr: "Missing 'username' in request body",
		},
		{
			name:    "username whitespace wins over short password",
			body:    `{"username":" exampleUser","password":"p234567"}`,
			wantErr: "Field: 'username' cannot start or end with whitespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := decodePayload(t, tt.body)

			_, err := payload.Validate()
			require.Error(t, err)

			var richErr *goerrors.Error
			require.ErrorAs(t, err, &richErr)
			assert.Equal(t, tt.wantErr, richErr.Message)
			assert.False(t, auth.IsConflictError(err), "rule violations are validation errors, not conflicts")
		})
	}
}

func TestRegistrationValidateSuccess(t *testing.T) {
	t.Run("accepts a valid payload", func(t *testing.T) {
		payload := decodePayload(t, `{"username":"exampleUser","password":"examplePass","fullname":"Example User"}`)

		msg, err := payload.Validate()
		require.NoError(t, err)
		assert.Equal(t, "exampleUser", msg.Username)
		assert.Equal(t, "examplePass", msg.Password)
		assert.Equal(t, "Example User", msg.Fullname)
	})

	t.Run("trims fullname", func(t *testing.T) {
		payload := decodePayload(t, `{"username":"exampleUser","password":"examplePass","fullname":" Example User "}`)

		msg, err := payload.Validate()
		require.NoError(t, err)
		assert.Equal(t, "Example User", msg.Fullname)
	})

	t.Run("fullname is optional", func(t *testing.T) {
		payload := decodePayload(t, `{"username":"exampleUser","password":"examplePass"}`)

		msg, err := payload.Validate()
		require.NoError(t, err)
		assert.Empty(t, msg.Fullname)
	})

	t.Run("counts password characters, not bytes, for the minimum", func(t *testing.T) {
		// 8 characters, 16 bytes
		payload := decodePayload(t, `{"username":"exampleUser","password":"éééééééé"}`)

		_, err := payload.Validate()
		assert.NoError(t, err)
	})

	t.Run("accepts boundary password lengths", func(t *testing.T) {
		for _, n := range []int{8, 72} {
			password := make([]byte, n)
			for i := range password {
				password[i] = 'p'
			}
			payload := auth.RegistrationCreatePayload{
				Username: json.RawMessage(`"exampleUser"`),
				Password: json.RawMessage(`"` + string(password) + `"`),
			}
			_, err := payload.Validate()
			assert.NoError(t, err, "length %d should be accepted", n)
		}
	})
}
