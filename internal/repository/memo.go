// Package repository provides persistence implementations for the
// dated-memo store using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/teamsalmon/transponder/internal/models"
)

// PostgresMemoRepository implements memo persistence against a PostgreSQL database.
type PostgresMemoRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresMemoRepository creates a new PostgresMemoRepository using the
// provided *sql.DB.
func NewPostgresMemoRepository(db *sql.DB) *PostgresMemoRepository {
	return &PostgresMemoRepository{DB: db}
}

// Insert stores a new memo, assigning it the next free index
// (one past the current maximum). The index assignment and the insert
// run in one transaction so concurrent creates cannot collide, and the
// idx primary key backs that up.
func (r *PostgresMemoRepository) Insert(ctx context.Context, memo *models.Memo) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var idx int
	err = tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(idx), 0) + 1 FROM memos
	`).Scan(&idx)
	if err != nil {
		return fmt.Errorf("next index: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO memos (idx, text, date) VALUES ($1, $2, $3)
	`, idx, memo.Text, memo.Date)
	if err != nil {
		return fmt.Errorf("insert memo: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	memo.Idx = idx
	return nil
}

// List fetches all memos in ascending date order, oldest first.
func (r *PostgresMemoRepository) List(ctx context.Context) ([]models.Memo, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT idx, text, date FROM memos ORDER BY date, idx
	`)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer rows.Close()

	var memos []models.Memo
	for rows.Next() {
		var m models.Memo
		if err := rows.Scan(&m.Idx, &m.Text, &m.Date); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		memos = append(memos, m)
	}
	return memos, rows.Err()
}

// DeleteByIndex removes the memo with the given index.
// Returns models.ErrNotFound if no such memo exists.
func (r *PostgresMemoRepository) DeleteByIndex(ctx context.Context, idx int) error {
	res, err := r.DB.ExecContext(ctx, `
		DELETE FROM memos WHERE idx = $1
	`, idx)
	if err != nil {
		return fmt.Errorf("DeleteByIndex: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return models.ErrNotFound
	}
	return nil
}
