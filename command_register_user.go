package auth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

// RegisterUserMessage is a validated registration request: strings are typed,
// trimmed where the policy says so, and inside the password length bounds.
// Build one through RegistrationCreatePayload.Validate.
type RegisterUserMessage struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Fullname  string `json:"fullname"`
	UseHashid bool   `json:"-"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// RegisterUserHandler hashes the password, then inserts the user inside a
// transaction. Uniqueness is enforced by the store's unique index, not by a
// pre-check: a duplicate-key failure at insert time is translated into
// ErrUsernameTaken, which closes the check-then-insert race window.
type RegisterUserHandler struct {
	repo RepositoryManager
}

func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Execute registers the user and returns the stored record.
func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	// hash before the transaction opens: bcrypt at this cost takes long
	// enough that holding a write transaction across it would serialize
	// concurrent registrations
	hash, err := HashPassword(event.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Username:     event.Username,
		PasswordHash: hash,
		Fullname:     NormalizeFullname(event.Fullname),
	}
	if event.UseHashid {
		if id, err := hashid.NewUUID(event.Username); err == nil {
			user.ID = id
		}
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err = h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		if user, err = h.repo.Users().RegisterTx(ctx, tx, user); err != nil {
			if isDuplicateKey(err) {
				return ErrUsernameTaken
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration transaction failed")
	}

	return user, nil
}
