package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/planboard/internal/models"
)

// memoryAttemptStore is an in-memory AttemptStore for tests.
type memoryAttemptStore struct {
	states map[string]*models.LoginAttemptState
}

func newMemoryAttemptStore() *memoryAttemptStore {
	return &memoryAttemptStore{states: make(map[string]*models.LoginAttemptState)}
}

func (s *memoryAttemptStore) GetLoginAttempt(_ context.Context, username string) (*models.LoginAttemptState, error) {
	state, ok := s.states[username]
	if !ok {
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

func (s *memoryAttemptStore) SaveLoginAttempt(_ context.Context, state *models.LoginAttemptState) error {
	copied := *state
	s.states[state.Username] = &copied
	return nil
}

func (s *memoryAttemptStore) ResetLoginAttempts(_ context.Context, username string) error {
	delete(s.states, username)
	return nil
}

// memoryUserStore is an in-memory UserStore for authenticator tests.
type memoryUserStore struct {
	users map[string]*models.UserAccount
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: make(map[string]*models.UserAccount)}
}

func (s *memoryUserStore) GetUser(_ context.Context, username string) (*models.UserAccount, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (s *memoryUserStore) CreateUser(_ context.Context, user *models.UserAccount) error {
	s.users[user.Username] = user
	return nil
}

func (s *memoryUserStore) UpdateUserPassword(_ context.Context, username, hash string) error {
	if user, ok := s.users[username]; ok {
		user.PasswordHash = hash
	}
	return nil
}

func setupAuthenticator(t *testing.T) (*PasswordAuthenticator, *memoryAttemptStore, *time.Time) {
	t.Helper()

	attempts := newMemoryAttemptStore()
	users := newMemoryUserStore()

	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	users.users["hana"] = &models.UserAccount{Username: "hana", Name: "Hana", PasswordHash: hash}

	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	lockout := NewLockout(attempts)
	lockout.now = func() time.Time { return now }

	return NewPasswordAuthenticator(users, lockout), attempts, &now
}

func TestFailuresBelowThresholdResetOnSuccess(t *testing.T) {
	authn, attempts, _ := setupAuthenticator(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := authn.Authenticate(ctx, "hana", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	state := attempts.states["hana"]
	if state == nil || state.FailureCount != 4 {
		t.Fatalf("expected 4 recorded failures, got %+v", state)
	}
	if !state.LockedUntil.IsZero() {
		t.Fatal("account must not lock below the threshold")
	}

	user, err := authn.Authenticate(ctx, "hana", "correct-horse")
	if err != nil {
		t.Fatalf("expected successful login, got %v", err)
	}
	if user.Username != "hana" {
		t.Errorf("expected user 'hana', got '%s'", user.Username)
	}

	if _, ok := attempts.states["hana"]; ok {
		t.Error("expected failure count reset to zero after success")
	}
}

func TestFifthFailureLocksAccount(t *testing.T) {
	authn, attempts, now := setupAuthenticator(t)
	ctx := context.Background()

	for i := 0; i < MaxFailures; i++ {
		if _, err := authn.Authenticate(ctx, "hana", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	state := attempts.states["hana"]
	if state == nil || !state.Locked(*now) {
		t.Fatalf("expected locked state after %d failures, got %+v", MaxFailures, state)
	}
	wantUntil := now.Add(LockoutDuration)
	if !state.LockedUntil.Equal(wantUntil) {
		t.Errorf("locked until: expected %v, got %v", wantUntil, state.LockedUntil)
	}
}

func TestLockedAttemptRejectedWithoutCredentialCheck(t *testing.T) {
	authn, attempts, _ := setupAuthenticator(t)
	ctx := context.Background()

	for i := 0; i < MaxFailures; i++ {
		authn.Authenticate(ctx, "hana", "wrong")
	}

	// Even the correct password is rejected while locked, and the failure
	// count stays untouched.
	_, err := authn.Authenticate(ctx, "hana", "correct-horse")
	if !errors.Is(err, ErrLockedOut) {
		t.Fatalf("expected ErrLockedOut, got %v", err)
	}

	var lockedErr *LockedOutError
	if !errors.As(err, &lockedErr) {
		t.Fatalf("expected *LockedOutError, got %T", err)
	}
	if lockedErr.Remaining <= 0 || lockedErr.Remaining > LockoutDuration {
		t.Errorf("remaining time out of range: %v", lockedErr.Remaining)
	}

	if state := attempts.states["hana"]; state.FailureCount != MaxFailures {
		t.Errorf("failure count changed during lockout: %d", state.FailureCount)
	}
}

func TestAttemptAfterWindowElapsesIsEvaluatedNormally(t *testing.T) {
	authn, attempts, now := setupAuthenticator(t)
	ctx := context.Background()

	for i := 0; i < MaxFailures; i++ {
		authn.Authenticate(ctx, "hana", "wrong")
	}

	*now = now.Add(LockoutDuration + time.Second)

	user, err := authn.Authenticate(ctx, "hana", "correct-horse")
	if err != nil {
		t.Fatalf("expected login after lockout expiry, got %v", err)
	}
	if user == nil {
		t.Fatal("expected user after lockout expiry")
	}
	if _, ok := attempts.states["hana"]; ok {
		t.Error("expected attempt state cleared after expiry and success")
	}
}

func TestExpiredLockoutResetsBeforeEvaluation(t *testing.T) {
	authn, attempts, now := setupAuthenticator(t)
	ctx := context.Background()

	for i := 0; i < MaxFailures; i++ {
		authn.Authenticate(ctx, "hana", "wrong")
	}

	*now = now.Add(LockoutDuration + time.Second)

	// A wrong password after expiry is a fresh first failure, not a sixth.
	if _, err := authn.Authenticate(ctx, "hana", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	state := attempts.states["hana"]
	if state == nil || state.FailureCount != 1 {
		t.Fatalf("expected failure count 1 after expired window, got %+v", state)
	}
	if !state.LockedUntil.IsZero() {
		t.Error("account must not be locked again after a single failure")
	}
}

func TestUnknownUsernameFailuresCountTowardLockout(t *testing.T) {
	authn, attempts, _ := setupAuthenticator(t)
	ctx := context.Background()

	for i := 0; i < MaxFailures; i++ {
		_, err := authn.Authenticate(ctx, "nobody", "guess")
		// Same generic error as a wrong password: existence is not revealed.
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	if _, err := authn.Authenticate(ctx, "nobody", "guess"); !errors.Is(err, ErrLockedOut) {
		t.Fatalf("expected ErrLockedOut for locked unknown username, got %v", err)
	}
	if state := attempts.states["nobody"]; state == nil || state.FailureCount != MaxFailures {
		t.Fatalf("expected %d failures recorded for unknown username, got %+v", MaxFailures, state)
	}
}
