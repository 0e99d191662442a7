// Package auth is the account directory: it stores credentials and answers
// verify/create. Nothing else in the system sees password material.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/meltforce/gkmanager/internal/storage"
)

// ErrExists is returned by Create when the username is already taken.
var ErrExists = errors.New("account already exists")

// Directory verifies and creates accounts against the users table.
type Directory struct {
	db *storage.DB
}

// NewDirectory creates a Directory over the shared store.
func NewDirectory(db *storage.DB) *Directory {
	return &Directory{db: db}
}

// Create registers a new account. A duplicate username yields ErrExists and
// leaves no partial row.
func (d *Directory) Create(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	var existing int
	err := d.db.SQL.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username=$1`, username).Scan(&existing)
	if err != nil {
		return fmt.Errorf("checking username: %w", err)
	}
	if existing > 0 {
		return ErrExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if _, err := d.db.SQL.ExecContext(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1,$2)`,
		username, string(hash)); err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

// Verify reports whether the username/password pair matches a stored
// account. Unknown usernames and bad passwords are indistinguishable.
func (d *Directory) Verify(ctx context.Context, username, password string) bool {
	var hash string
	err := d.db.SQL.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE username=$1`, username).Scan(&hash)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
