package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/planboard/internal/models"
)

const (
	// MaxFailures is the number of consecutive failed attempts that triggers
	// a lockout.
	MaxFailures = 5

	// LockoutDuration is how long attempts are rejected after the threshold
	// is reached.
	LockoutDuration = 5 * time.Minute
)

// ErrLockedOut is the sentinel wrapped by LockedOutError; match it with
// errors.Is.
var ErrLockedOut = errors.New("account temporarily locked")

// LockedOutError is returned while an account is inside its lockout window.
type LockedOutError struct {
	Until     time.Time
	Remaining time.Duration
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("account locked, retry in %s", e.Remaining.Round(time.Second))
}

func (e *LockedOutError) Unwrap() error { return ErrLockedOut }

// AttemptStore persists per-username login attempt state. Implemented by the
// storage layer; last-write-wins across concurrent sessions is acceptable.
type AttemptStore interface {
	// GetLoginAttempt returns the attempt state for a username, or nil if no
	// failures have been recorded.
	GetLoginAttempt(ctx context.Context, username string) (*models.LoginAttemptState, error)

	// SaveLoginAttempt creates or replaces the attempt state for a username.
	SaveLoginAttempt(ctx context.Context, state *models.LoginAttemptState) error

	// ResetLoginAttempts clears the attempt state for a username.
	ResetLoginAttempts(ctx context.Context, username string) error
}

// Lockout enforces the failed-login lockout window for each username.
//
// State transitions:
//   - failure takes the count to MaxFailures -> locked for LockoutDuration
//   - success -> count reset to zero
//   - attempt while locked -> rejected before any credential comparison
//   - attempt after the window elapses -> state reset, evaluated normally
type Lockout struct {
	store AttemptStore
	now   func() time.Time
}

// NewLockout creates a lockout tracker backed by the given store.
func NewLockout(store AttemptStore) *Lockout {
	return &Lockout{store: store, now: time.Now}
}

// Check returns a LockedOutError if the username is inside its lockout
// window. An expired window is cleared here, so the attempt that follows is
// evaluated with a clean slate.
func (l *Lockout) Check(ctx context.Context, username string) error {
	state, err := l.store.GetLoginAttempt(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load attempt state: %w", err)
	}
	if state == nil || state.LockedUntil.IsZero() {
		return nil
	}

	now := l.now()
	if state.Locked(now) {
		return &LockedOutError{Until: state.LockedUntil, Remaining: state.LockedUntil.Sub(now)}
	}

	// Window elapsed: back to Unlocked(0).
	if err := l.store.ResetLoginAttempts(ctx, username); err != nil {
		return fmt.Errorf("failed to clear expired lockout: %w", err)
	}
	return nil
}

// RecordFailure increments the failure count and locks the account once the
// threshold is reached.
func (l *Lockout) RecordFailure(ctx context.Context, username string) error {
	state, err := l.store.GetLoginAttempt(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to load attempt state: %w", err)
	}
	if state == nil {
		state = &models.LoginAttemptState{Username: username}
	}

	state.FailureCount++
	if state.FailureCount >= MaxFailures {
		state.LockedUntil = l.now().Add(LockoutDuration)
	}

	if err := l.store.SaveLoginAttempt(ctx, state); err != nil {
		return fmt.Errorf("failed to save attempt state: %w", err)
	}
	return nil
}

// RecordSuccess clears the failure count after a successful login.
func (l *Lockout) RecordSuccess(ctx context.Context, username string) error {
	if err := l.store.ResetLoginAttempts(ctx, username); err != nil {
		return fmt.Errorf("failed to reset attempt state: %w", err)
	}
	return nil
}
