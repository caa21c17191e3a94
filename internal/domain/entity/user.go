package entity

import (
	"time"

	"github.com/google/uuid"
)

// BootstrapAdminUsername is the built-in administrator account created on
// first start. It can never be deleted.
const BootstrapAdminUsername = "admin"

// User is an account that can sign in and operate on the inventory. The
// bcrypt password hash lives here; there is no second credential store.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username     string    // The unique login name.
	PasswordHash string    // The bcrypt hash of the user's password.
	Role         Role      // Either "user" or "admin".
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
