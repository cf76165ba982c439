package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mmynk/planboard/internal/models"
)

// CreateUser inserts a new account into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.UserAccount) error {
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, name, password_hash, is_admin, created_at) VALUES (?, ?, ?, ?, ?)",
		user.Username, user.Name, user.PasswordHash, user.IsAdmin, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUser retrieves an account by username. Returns nil if no such user
// exists.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*models.UserAccount, error) {
	user := &models.UserAccount{}
	err := s.db.QueryRowContext(ctx,
		"SELECT username, name, password_hash, is_admin, created_at FROM users WHERE username = ?",
		username,
	).Scan(&user.Username, &user.Name, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUserPassword replaces the stored password hash for a username.
func (s *SQLiteStore) UpdateUserPassword(ctx context.Context, username, passwordHash string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE username = ?",
		passwordHash, username,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check password update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user not found: %s", username)
	}
	return nil
}

// ListUsers returns all accounts ordered by creation time.
func (s *SQLiteStore) ListUsers(ctx context.Context) ([]*models.UserAccount, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT username, name, password_hash, is_admin, created_at FROM users ORDER BY created_at, username",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.UserAccount
	for rows.Next() {
		user := &models.UserAccount{}
		if err := rows.Scan(&user.Username, &user.Name, &user.PasswordHash, &user.IsAdmin, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}
