// Package db defines the PostgreSQL operator contract. The pgx
// implementation lives in internal/iodb.
package db

import (
	"context"

	"github.com/agrosense/fertadvisor/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages a PostgreSQL connection pool. Reference sources and
// the importer use Pool() for queries, transactions and CopyFrom.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)
}
