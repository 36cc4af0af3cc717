package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode)
}

// Store persists interview contexts, session snapshots and results.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, config Config) (*Store, error) {
	pool, err := pgxpool.New(ctx, config.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("Failed to connect to database, Error: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS interview_contexts (
	interview_id TEXT PRIMARY KEY,
	context JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS interview_sessions (
	interview_id TEXT PRIMARY KEY,
	session JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS interview_results (
	interview_id TEXT PRIMARY KEY,
	result JSONB NOT NULL,
	partial BOOLEAN NOT NULL DEFAULT false,
	completed_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS code_evaluations (
	id BIGSERIAL PRIMARY KEY,
	interview_id TEXT NOT NULL,
	problem_id TEXT NOT NULL,
	evaluation JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS code_evaluations_interview_idx ON code_evaluations (interview_id);
`)
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close() {
	s.pool.Close()
}
