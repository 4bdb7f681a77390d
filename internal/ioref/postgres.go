package ioref

import (
	"context"

	"github.com/agrosense/fertadvisor/pkg/config"
	"github.com/agrosense/fertadvisor/pkg/db"
	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
	"github.com/agrosense/fertadvisor/pkg/refdata"
	"github.com/agrosense/fertadvisor/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgSource struct {
	op db.Operator
}

// NewPostgres connects to PostgreSQL with the given operator and
// returns a Source reading imported reference tables.
func NewPostgres(
	ctx context.Context,
	op db.Operator,
	cfg *config.DatabaseConfig,
) (refdata.Source, error) {
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	tables := []string{
		schema.RegionProfile{}.TableName(),
		schema.Dosage{}.TableName(),
	}
	for _, v := range tables {
		exists, err := op.TableExists(ctx, v)
		if err == nil && !exists {
			err = MissingTableError(v)
		}
		if err != nil {
			_ = op.Close()
			return nil, err
		}
	}
	return &pgSource{op: op}, nil
}

// Profiles implements refdata.Source.
func (s *pgSource) Profiles(ctx context.Context) (*deficiency.Table, error) {
	return profilesFromQuery(ctx, pgxQueryer{s.op.Pool()})
}

// Dosages implements refdata.Source.
func (s *pgSource) Dosages(ctx context.Context) (*dosage.Table, error) {
	return dosagesFromQuery(ctx, pgxQueryer{s.op.Pool()})
}

// Close implements refdata.Source.
func (s *pgSource) Close() error {
	return s.op.Close()
}

type pgxQueryer struct {
	pool *pgxpool.Pool
}

func (p pgxQueryer) query(
	ctx context.Context,
	q string,
	fn func(rowScanner) error,
) error {
	rows, err := p.pool.Query(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	if err := fn(rows); err != nil {
		return err
	}
	return rows.Err()
}
