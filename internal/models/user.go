package models

import "time"

// UserAccount represents a registered dashboard user.
//
// Accounts are created at first run (the bootstrapped admin) or by an admin
// action, and are never mutated afterwards except for password changes.
type UserAccount struct {
	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized and never logged.
	PasswordHash string `json:"-"`

	// Name is the display name shown in the dashboard.
	Name string `json:"name"`

	// IsAdmin grants access to user management and division editing.
	IsAdmin bool `json:"is_admin"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}

// NewUserAccount creates an account with the creation time set to now.
func NewUserAccount(username, name, passwordHash string, isAdmin bool) *UserAccount {
	return &UserAccount{
		Username:     username,
		Name:         name,
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().Unix(),
	}
}
