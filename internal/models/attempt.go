package models

import "time"

// LoginAttemptState tracks consecutive credential failures for one username.
//
// Lifecycle: created on the first failed attempt, incremented on each
// subsequent failure, reset to zero on success, and stamped with a lockout
// deadline once the failure threshold is reached. State is kept per submitted
// username whether or not the account exists, so responses stay uniform.
type LoginAttemptState struct {
	Username     string
	FailureCount int

	// LockedUntil is the end of the lockout window. Zero means not locked.
	LockedUntil time.Time
}

// Locked reports whether the account is inside its lockout window at the
// given instant.
func (s *LoginAttemptState) Locked(now time.Time) bool {
	return !s.LockedUntil.IsZero() && now.Before(s.LockedUntil)
}
