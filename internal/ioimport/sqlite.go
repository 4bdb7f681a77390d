package ioimport

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
	"github.com/agrosense/fertadvisor/pkg/lifecycle"
	"github.com/agrosense/fertadvisor/pkg/schema"
	"github.com/gnames/gnsys"
	_ "modernc.org/sqlite"
)

type sqliteImporter struct {
	path string
}

// NewSQLite creates an Importer that writes to a SQLite file. The file
// and its directory are created when missing.
func NewSQLite(path string) lifecycle.Importer {
	return &sqliteImporter{path: path}
}

// Import implements lifecycle.Importer. All changes happen in a single
// transaction.
func (s *sqliteImporter) Import(
	ctx context.Context,
	profiles *deficiency.Table,
	dosages *dosage.Table,
) (lifecycle.Stats, error) {
	var res lifecycle.Stats

	if err := gnsys.MakeDir(filepath.Dir(s.path)); err != nil {
		return res, ImportError(s.path, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return res, ImportError(s.path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, ImportError(s.path, err)
	}
	defer tx.Rollback()

	for _, m := range schema.DDLModels() {
		if _, err = tx.ExecContext(ctx, m.TableDDL()); err != nil {
			return res, MigrateError(err)
		}
		q := "DELETE FROM " + m.TableName()
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return res, ImportError(m.TableName(), err)
		}
	}

	var rp schema.RegionProfile
	for _, v := range profileRecords(profiles) {
		err = insert(ctx, tx, rp.TableName(), schema.Columns(rp), profileValues(v))
		if err != nil {
			return res, err
		}
		res.Profiles++
	}

	var ds schema.Dosage
	for _, v := range dosageRecords(dosages) {
		err = insert(ctx, tx, ds.TableName(), schema.Columns(ds), dosageValues(v))
		if err != nil {
			return res, err
		}
		res.Dosages++
	}

	if err = tx.Commit(); err != nil {
		return lifecycle.Stats{}, ImportError(s.path, err)
	}

	slog.Info("Imported reference tables into SQLite",
		"path", s.path,
		"profiles", res.Profiles,
		"dosages", res.Dosages,
	)
	return res, nil
}

func insert(
	ctx context.Context,
	tx *sql.Tx,
	table string,
	columns []string,
	values []any,
) error {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), marks)
	if _, err := tx.ExecContext(ctx, q, values...); err != nil {
		return ImportError(table, err)
	}
	return nil
}
