// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/askup/models"
)

// CreateUser registers a new account. The username must already be trimmed
// and lowercased by the caller; uniqueness of both username and email is
// checked before the insert so the two conflicts surface distinctly.
func (s *Store) CreateUser(ctx context.Context, account *models.Account) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)
	`), account.Username).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: username already taken", ErrConflict)
	}

	err = s.db.QueryRowContext(ctx, s.q(`
		SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)
	`), account.Email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: email already registered", ErrConflict)
	}

	if account.CreatedAt == 0 {
		account.CreatedAt = time.Now().Unix()
	}

	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`), account.Username, account.Email, account.PasswordHash, account.CreatedAt)
	if err != nil {
		// The pre-checks race against concurrent registrations; the unique
		// constraints are the authority.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username or email already registered", ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUser retrieves an account by username.
func (s *Store) GetUser(ctx context.Context, username string) (*models.Account, error) {
	account := &models.Account{}
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT username, email, password_hash, created_at FROM users WHERE username = ?
	`), username).Scan(&account.Username, &account.Email, &account.PasswordHash, &account.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: username not found", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return account, nil
}
