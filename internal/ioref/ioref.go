// Package ioref loads reference tables from CSV files, a SQLite
// database or PostgreSQL. This is an impure I/O package that implements
// refdata.Source.
package ioref

import (
	"context"
	"log/slog"

	"github.com/agrosense/fertadvisor/internal/iodb"
	"github.com/agrosense/fertadvisor/pkg/config"
	"github.com/agrosense/fertadvisor/pkg/refdata"
)

// New returns a Source according to cfg.Tables.Source.
func New(ctx context.Context, cfg *config.Config) (refdata.Source, error) {
	switch cfg.Tables.Source {
	case "", "csv":
		slog.Debug("Reading reference tables from CSV",
			"deficiency", cfg.DeficiencyPath(),
			"dosage", cfg.DosagePath(),
		)
		return NewCSV(cfg.DeficiencyPath(), cfg.DosagePath()), nil
	case "sqlite":
		slog.Debug("Reading reference tables from SQLite",
			"path", cfg.SQLitePath())
		return NewSQLite(cfg.SQLitePath())
	case "postgres":
		slog.Debug("Reading reference tables from PostgreSQL",
			"host", cfg.Database.Host,
			"database", cfg.Database.Database,
		)
		return NewPostgres(ctx, iodb.NewPgxOperator(), &cfg.Database)
	default:
		return nil, UnknownSourceError(cfg.Tables.Source)
	}
}
