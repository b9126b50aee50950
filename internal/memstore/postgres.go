package memstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists the memory list as one JSONB row.
type PostgresStore struct {
	pool *pgxpool.Pool
	name string
}

// NewPostgresStore connects a Postgres-backed store and creates its table if
// missing. name distinguishes independent memory lists sharing one database.
func NewPostgresStore(ctx context.Context, databaseURL, name string) (*PostgresStore, error) {
	if name == "" {
		name = "similarity_memory"
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS persona_memory (
			name       TEXT PRIMARY KEY,
			entries    JSONB NOT NULL DEFAULT '[]',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create persona_memory table: %w", err)
	}

	return &PostgresStore{pool: pool, name: name}, nil
}

// Load returns the remembered entries, oldest first.
func (s *PostgresStore) Load(ctx context.Context) ([]string, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT entries FROM persona_memory WHERE name = $1`, s.name,
	).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to load memory row %s: %w", s.name, err)
	}

	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse memory row %s: %w", s.name, err)
	}
	return entries, nil
}

// Save upserts the entries for this memory list.
func (s *PostgresStore) Save(ctx context.Context, entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal memory entries: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO persona_memory (name, entries, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (name) DO UPDATE SET entries = $2, updated_at = NOW()`,
		s.name, raw)
	if err != nil {
		return fmt.Errorf("failed to save memory row %s: %w", s.name, err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
