// Package repository provides persistence implementations for login
// sessions using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/teamsalmon/transponder/internal/models"
)

// PostgresSessionRepository implements session persistence against a PostgreSQL database.
type PostgresSessionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository
// using the provided *sql.DB.
func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{DB: db}
}

// Create stores a new login session.
func (r *PostgresSessionRepository) Create(ctx context.Context, s *models.Session) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (token, username, role, expires_at) VALUES ($1, $2, $3, $4)
	`, s.Token, s.Username, s.Role, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Find fetches a live session by token. Expired or unknown tokens
// return models.ErrNotFound.
func (r *PostgresSessionRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	var s models.Session
	err := r.DB.QueryRowContext(ctx, `
		SELECT token, username, role, expires_at FROM sessions
		WHERE token = $1 AND expires_at > NOW()
	`, token).Scan(&s.Token, &s.Username, &s.Role, &s.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Find: %w", err)
	}
	return &s, nil
}

// Delete removes a session by token. Deleting an unknown token is not
// an error; logout is idempotent.
func (r *PostgresSessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM sessions WHERE token = $1
	`, token)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	return nil
}
