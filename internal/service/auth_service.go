package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/planboard/internal/auth"
	"github.com/mmynk/planboard/internal/models"
	"github.com/mmynk/planboard/internal/storage"
)

// AuthService handles login, session issuance and user administration.
type AuthService struct {
	authn  auth.Authenticator
	jwt    *auth.JWTManager
	store  storage.Store
	logger *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authn auth.Authenticator, jwt *auth.JWTManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		authn:  authn,
		jwt:    jwt,
		store:  store,
		logger: logger,
	}
}

// Login verifies credentials (subject to lockout) and returns the account
// with a signed session token. The password never reaches the log.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.UserAccount, string, error) {
	s.logger.Info("Login request", "username", username)

	if username == "" || password == "" {
		return nil, "", auth.ErrInvalidCredentials
	}

	user, err := s.authn.Authenticate(ctx, username, password)
	if err != nil {
		s.logger.Warn("Login failed", "username", username, "error", err)
		return nil, "", err
	}

	token, err := s.jwt.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "username", username, "error", err)
		return nil, "", err
	}

	s.logger.Info("User logged in", "username", user.Username, "admin", user.IsAdmin)
	return user, token, nil
}

// CurrentUser returns the account behind an authenticated session.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*models.UserAccount, error) {
	user, err := s.store.GetUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, auth.ErrUnknownUser
	}
	return user, nil
}

// AddUser creates a new account. Only admins reach this path; the server
// enforces that before calling.
func (s *AuthService) AddUser(ctx context.Context, username, name, password string, isAdmin bool) (*models.UserAccount, error) {
	s.logger.Info("AddUser request", "username", username, "admin", isAdmin)

	user, err := s.authn.Register(ctx, username, name, password, isAdmin)
	if err != nil {
		s.logger.Warn("AddUser failed", "username", username, "error", err)
		return nil, err
	}

	s.logger.Info("User created", "username", user.Username)
	return user, nil
}

// ChangePassword verifies the current password and replaces it.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	s.logger.Info("ChangePassword request", "username", username)

	if err := s.authn.ChangePassword(ctx, username, oldPassword, newPassword); err != nil {
		s.logger.Warn("ChangePassword failed", "username", username, "error", err)
		return err
	}

	s.logger.Info("Password changed", "username", username)
	return nil
}

// ListUsers returns all accounts. Password hashes are excluded from
// serialization at the model level.
func (s *AuthService) ListUsers(ctx context.Context) ([]*models.UserAccount, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
