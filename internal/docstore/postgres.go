package docstore

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore manages the database connection backing the document store
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new connection to PostgreSQL
func NewPostgresStore(ctx context.Context, dbURL string) (*PostgresStore, error) {
	if dbURL == "" {
		return nil, fmt.Errorf("database URL is not set")
	}

	// Create a connection pool
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Establish the connection pool
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the database connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// GetPool returns the connection pool for direct use
func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}

// Collection returns a handle to the named document collection
func (s *PostgresStore) Collection(name string) *PostgresCollection {
	return &PostgresCollection{
		pool: s.pool,
		name: name,
	}
}
