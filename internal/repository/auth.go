// Package repository provides persistence implementations for the
// account, resource, memo, and session stores.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/teamsalmon/transponder/internal/models"
)

// uniqueViolation is the Postgres error code raised when an insert
// breaks a unique constraint.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// PostgresAuthRepository implements account persistence using a PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a new PostgresAuthRepository with the given
// database connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// AccountExists checks whether an account with the specified username exists.
// The match is case-sensitive. It returns true if the account exists, false otherwise.
func (r *PostgresAuthRepository) AccountExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE username = $1)`,
		username,
	).Scan(&exists)
	return exists, err
}

// FindAccount fetches the account with the given username.
// Returns models.ErrUnknownUser if no such account exists.
func (r *PostgresAuthRepository) FindAccount(ctx context.Context, username string) (*models.Account, error) {
	var acc models.Account
	err := r.DB.QueryRowContext(ctx, `
		SELECT username, password_hash, role FROM accounts WHERE username = $1
	`, username).Scan(&acc.Username, &acc.PasswordHash, &acc.Role)
	if err == sql.ErrNoRows {
		return nil, models.ErrUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("FindAccount: %w", err)
	}
	return &acc, nil
}

// CreateAccount inserts a new account record. The username primary key
// closes the register race: if a concurrent insert wins, the unique
// violation is mapped to models.ErrAlreadyExists.
func (r *PostgresAuthRepository) CreateAccount(ctx context.Context, acc *models.Account) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO accounts (username, password_hash, role) VALUES ($1, $2, $3)
	`, acc.Username, acc.PasswordHash, acc.Role)
	if isUniqueViolation(err) {
		return models.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("CreateAccount: %w", err)
	}
	return nil
}
