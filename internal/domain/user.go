package domain

import "time"

// Role represents the user's permission level in the system.
type Role string

const (
	// RoleAdmin grants access to the content-management endpoints.
	RoleAdmin Role = "admin"
	// RoleUser grants standard access: voting, reviews, submissions.
	RoleUser Role = "user"
)

// User represents an authenticated account.
type User struct {
	Timestamps
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // argon2id encoded, never serialized
	Role         Role      `json:"role"`
	LastLoginAt  time.Time `json:"last_login_at,omitzero"`
}

// IsAdmin returns true if the user may use the admin surface.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
