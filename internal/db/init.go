package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'standard'
);

CREATE TABLE IF NOT EXISTS resources (
    id SERIAL PRIMARY KEY,
    category TEXT NOT NULL,
    name TEXT NOT NULL,
    office_name TEXT NOT NULL DEFAULT '',
    address TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    website TEXT NOT NULL DEFAULT '',
    takes_ohp TEXT NOT NULL DEFAULT 'no',
    takes_private_insurance TEXT NOT NULL DEFAULT 'no',
    sliding_scale TEXT NOT NULL DEFAULT 'no',
    diversity_trained TEXT NOT NULL DEFAULT 'no',
    inclusive_paperwork TEXT NOT NULL DEFAULT 'no',
    asks_pronoun TEXT NOT NULL DEFAULT 'no',
    monitors_hormones TEXT NOT NULL DEFAULT 'no',
    notes TEXT NOT NULL DEFAULT '',
    verified BOOLEAN NOT NULL DEFAULT FALSE,
    UNIQUE (category, name)
);

CREATE TABLE IF NOT EXISTS memos (
    idx INTEGER PRIMARY KEY,
    text TEXT NOT NULL,
    date DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS sessions (
    token TEXT PRIMARY KEY,
    username TEXT NOT NULL REFERENCES accounts(username) ON DELETE CASCADE,
    role TEXT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL
);
`

// InitPostgres opens the database, verifies the connection, and
// creates the schema. Uniqueness of account usernames and of
// (category, name) resource pairs is enforced here so concurrent
// check-then-insert requests cannot both succeed.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
