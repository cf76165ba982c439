package auth

import (
	"context"
	"fmt"

	"github.com/mmynk/planboard/internal/models"
)

// UserStore defines the user persistence operations the authenticator needs.
// This keeps the authenticator independent of the storage implementation.
type UserStore interface {
	// GetUser returns the account for a username, or nil if none exists.
	GetUser(ctx context.Context, username string) (*models.UserAccount, error)
	CreateUser(ctx context.Context, user *models.UserAccount) error
	UpdateUserPassword(ctx context.Context, username, passwordHash string) error
}

// Authenticator verifies credentials and manages accounts. The abstraction
// allows swapping auth methods without touching the service layer.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*models.UserAccount, error)
	Register(ctx context.Context, username, name, password string, isAdmin bool) (*models.UserAccount, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
}

// PasswordAuthenticator implements password authentication with bcrypt
// hashing and per-username lockout.
type PasswordAuthenticator struct {
	users   UserStore
	lockout *Lockout
}

var _ Authenticator = (*PasswordAuthenticator)(nil)

// NewPasswordAuthenticator creates a password-based authenticator.
func NewPasswordAuthenticator(users UserStore, lockout *Lockout) *PasswordAuthenticator {
	return &PasswordAuthenticator{users: users, lockout: lockout}
}

// Authenticate verifies the username and password, returning the account if
// valid.
//
// While the username is locked out the attempt is rejected before any
// credential comparison, so a locked account cannot be guessed against.
// Failures for unknown usernames are counted too: the response never reveals
// whether the account exists.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, password string) (*models.UserAccount, error) {
	if err := a.lockout.Check(ctx, username); err != nil {
		return nil, err
	}

	user, err := a.users.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if user == nil || !VerifyPassword(user.PasswordHash, password) {
		if err := a.lockout.RecordFailure(ctx, username); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if err := a.lockout.RecordSuccess(ctx, username); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a new account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, name, password string, isAdmin bool) (*models.UserAccount, error) {
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := a.users.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.NewUserAccount(username, name, hash, isAdmin)
	if err := a.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (a *PasswordAuthenticator) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	user, err := a.users.GetUser(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return ErrUnknownUser
	}

	if !VerifyPassword(user.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := a.users.UpdateUserPassword(ctx, username, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
