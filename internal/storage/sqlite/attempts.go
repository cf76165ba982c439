package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/planboard/internal/models"
)

// GetLoginAttempt retrieves the attempt state for a username. Returns nil if
// no failures have been recorded.
func (s *SQLiteStore) GetLoginAttempt(ctx context.Context, username string) (*models.LoginAttemptState, error) {
	state := &models.LoginAttemptState{}
	var lockedUntil int64

	err := s.db.QueryRowContext(ctx,
		"SELECT username, failure_count, locked_until FROM login_attempts WHERE username = ?",
		username,
	).Scan(&state.Username, &state.FailureCount, &lockedUntil)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get login attempt: %w", err)
	}

	if lockedUntil != 0 {
		state.LockedUntil = time.Unix(lockedUntil, 0)
	}
	return state, nil
}

// SaveLoginAttempt creates or replaces the attempt state for a username.
// Last write wins; lockout updates need no transactional guarantee.
func (s *SQLiteStore) SaveLoginAttempt(ctx context.Context, state *models.LoginAttemptState) error {
	var lockedUntil int64
	if !state.LockedUntil.IsZero() {
		lockedUntil = state.LockedUntil.Unix()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO login_attempts (username, failure_count, locked_until)
		VALUES (?, ?, ?)
		ON CONFLICT(username) DO UPDATE SET
			failure_count = excluded.failure_count,
			locked_until = excluded.locked_until`,
		state.Username, state.FailureCount, lockedUntil,
	)
	if err != nil {
		return fmt.Errorf("failed to save login attempt: %w", err)
	}
	return nil
}

// ResetLoginAttempts clears the attempt state for a username.
func (s *SQLiteStore) ResetLoginAttempts(ctx context.Context, username string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM login_attempts WHERE username = ?", username,
	); err != nil {
		return fmt.Errorf("failed to reset login attempts: %w", err)
	}
	return nil
}
