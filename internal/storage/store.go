// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/planboard/internal/models"
)

// Store defines the persistence operations for the planning dashboard.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// GetUser retrieves an account by username.
	// Returns nil without error if no such user exists.
	GetUser(ctx context.Context, username string) (*models.UserAccount, error)

	// CreateUser persists a new account.
	CreateUser(ctx context.Context, user *models.UserAccount) error

	// UpdateUserPassword replaces the stored password hash for a username.
	UpdateUserPassword(ctx context.Context, username, passwordHash string) error

	// ListUsers returns all accounts ordered by creation time.
	ListUsers(ctx context.Context) ([]*models.UserAccount, error)

	// GetLoginAttempt retrieves the login attempt state for a username.
	// Returns nil without error if no failures have been recorded.
	GetLoginAttempt(ctx context.Context, username string) (*models.LoginAttemptState, error)

	// SaveLoginAttempt creates or replaces the attempt state for a username.
	SaveLoginAttempt(ctx context.Context, state *models.LoginAttemptState) error

	// ResetLoginAttempts clears the attempt state for a username.
	ResetLoginAttempts(ctx context.Context, username string) error

	// ListDivisions returns the planning divisions in display order.
	ListDivisions(ctx context.Context) ([]models.Division, error)

	// ReplaceDivisions replaces the full division list.
	ReplaceDivisions(ctx context.Context, divisions []models.Division) error

	// GetAllocationSettings returns the current allocation settings.
	GetAllocationSettings(ctx context.Context) (*models.AllocationSettings, error)

	// SaveAllocationSettings replaces the allocation settings.
	SaveAllocationSettings(ctx context.Context, settings *models.AllocationSettings) error

	// Close releases any resources held by the store.
	Close() error
}
