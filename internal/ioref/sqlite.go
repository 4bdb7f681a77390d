package ioref

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
	"github.com/agrosense/fertadvisor/pkg/refdata"
	"github.com/agrosense/fertadvisor/pkg/schema"
	_ "modernc.org/sqlite"
)

type sqliteSource struct {
	path string
	db   *sql.DB
}

// NewSQLite opens a reference database created by the import command.
func NewSQLite(path string) (refdata.Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, OpenError(path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	return &sqliteSource{path: path, db: db}, nil
}

// Profiles implements refdata.Source.
func (s *sqliteSource) Profiles(ctx context.Context) (*deficiency.Table, error) {
	return profilesFromQuery(ctx, sqlQueryer{s.db})
}

// Dosages implements refdata.Source.
func (s *sqliteSource) Dosages(ctx context.Context) (*dosage.Table, error) {
	return dosagesFromQuery(ctx, sqlQueryer{s.db})
}

// Close implements refdata.Source.
func (s *sqliteSource) Close() error {
	return s.db.Close()
}

// rowScanner is the common part of sql.Rows and pgx.Rows.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// queryer runs a query and hands rows to a callback. It hides
// differences between database/sql and pgx.
type queryer interface {
	query(ctx context.Context, q string, fn func(rowScanner) error) error
}

type sqlQueryer struct {
	db *sql.DB
}

func (s sqlQueryer) query(
	ctx context.Context,
	q string,
	fn func(rowScanner) error,
) error {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return err
	}
	defer rows.Close()
	if err := fn(rows); err != nil {
		return err
	}
	return rows.Err()
}

func profilesFromQuery(ctx context.Context, qr queryer) (*deficiency.Table, error) {
	table := schema.RegionProfile{}.TableName()
	q := fmt.Sprintf(
		"SELECT region, n, p, k, oc, b, cu, fe, mn, s, zn FROM %s ORDER BY ordinal",
		table,
	)

	var rows []deficiency.Row
	err := qr.query(ctx, q, func(rs rowScanner) error {
		for rs.Next() {
			var r schema.RegionProfile
			err := rs.Scan(
				&r.Region, &r.N, &r.P, &r.K, &r.OC,
				&r.B, &r.Cu, &r.Fe, &r.Mn, &r.S, &r.Zn,
			)
			if err != nil {
				return err
			}
			row, err := deficiency.ParseRow(r.Region, r.Labels())
			if err != nil {
				return err
			}
			rows = append(rows, row)
		}
		return rs.Err()
	})
	if err != nil {
		return nil, QueryError(table, err)
	}
	if len(rows) == 0 {
		return nil, EmptyTableError(table)
	}
	return deficiency.New(rows)
}

func dosagesFromQuery(ctx context.Context, qr queryer) (*dosage.Table, error) {
	table := schema.Dosage{}.TableName()
	q := fmt.Sprintf("SELECT name, dosage FROM %s ORDER BY ordinal", table)

	var rows []dosage.Row
	err := qr.query(ctx, q, func(rs rowScanner) error {
		for rs.Next() {
			var r dosage.Row
			if err := rs.Scan(&r.Name, &r.Dosage); err != nil {
				return err
			}
			rows = append(rows, r)
		}
		return rs.Err()
	})
	if err != nil {
		return nil, QueryError(table, err)
	}
	return dosage.New(rows), nil
}
