package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const createTableQuery = `CREATE TABLE IF NOT EXISTS catalog_state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore keeps keys in a single catalog_state table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the backing table when it does not exist yet.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("kv/postgres: migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM catalog_state WHERE key = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var v string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv/postgres: get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO catalog_state (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("kv/postgres: set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM catalog_state WHERE key = $1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("kv/postgres: delete %s: %w", key, err)
	}
	return nil
}
