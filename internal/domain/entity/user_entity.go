package entity

import (
	"time"
)

// Role is the authorization role stored on the user row.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the aggregate root for the user domain.
// Passwords are stored as bcrypt hashes in Password field.
// The ID is the canonical identity everywhere: JWT subject, session key,
// and the target of role administration.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	AvatarURL string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user may access admin-gated operations.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
