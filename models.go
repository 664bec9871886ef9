package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model. The password digest never leaves the process: it is
// excluded from JSON output at the type level and UserView is the only shape
// handed to tokens or HTTP responses.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Fullname      string     `bun:"fullname" json:"fullname,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// UserView is the sanitized projection embedded in tokens and returned by the
// registration endpoint. It has no password field by construction.
type UserView struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Fullname string `json:"fullname,omitempty"`
}

// View returns the sanitized projection of the user.
func (u *User) View() UserView {
	view := UserView{
		Username: u.Username,
		Fullname: u.Fullname,
	}
	if u.ID != uuid.Nil {
		view.ID = u.ID.String()
	}
	return view
}

// NormalizeFullname trims the optional display name before storage.
func NormalizeFullname(fullname string) string {
	return strings.TrimSpace(fullname)
}
