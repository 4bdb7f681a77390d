package ioimport

import (
	"context"
	"log/slog"

	"github.com/agrosense/fertadvisor/internal/iodb"
	"github.com/agrosense/fertadvisor/pkg/db"
	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
	"github.com/agrosense/fertadvisor/pkg/lifecycle"
	"github.com/agrosense/fertadvisor/pkg/schema"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type pgImporter struct {
	operator  db.Operator
	batchSize int
}

// NewPostgres creates an Importer that writes through a connected
// operator. Rows are sent with COPY in batches of batchSize.
func NewPostgres(op db.Operator, batchSize int) lifecycle.Importer {
	if batchSize < 1 {
		batchSize = 1
	}
	return &pgImporter{operator: op, batchSize: batchSize}
}

// Import implements lifecycle.Importer.
func (p *pgImporter) Import(
	ctx context.Context,
	profiles *deficiency.Table,
	dosages *dosage.Table,
) (lifecycle.Stats, error) {
	var res lifecycle.Stats

	if err := p.migrate(); err != nil {
		return res, err
	}

	// truncate and copies share one transaction, so a failed import
	// keeps previous rows
	tx, err := p.operator.Pool().Begin(ctx)
	if err != nil {
		return res, ImportError("begin", err)
	}
	defer tx.Rollback(ctx)

	q := "TRUNCATE TABLE " +
		schema.RegionProfile{}.TableName() + ", " + schema.Dosage{}.TableName()
	if _, err = tx.Exec(ctx, q); err != nil {
		return res, ImportError("truncate", err)
	}

	var rp schema.RegionProfile
	pRecs := profileRecords(profiles)
	pRows := make([][]any, len(pRecs))
	for i, v := range pRecs {
		pRows[i] = profileValues(v)
	}
	n, err := p.copyRows(ctx, tx, rp.TableName(), schema.Columns(rp), pRows)
	if err != nil {
		return res, err
	}
	res.Profiles = n

	var ds schema.Dosage
	dRecs := dosageRecords(dosages)
	dRows := make([][]any, len(dRecs))
	for i, v := range dRecs {
		dRows[i] = dosageValues(v)
	}
	n, err = p.copyRows(ctx, tx, ds.TableName(), schema.Columns(ds), dRows)
	if err != nil {
		return res, err
	}
	res.Dosages = n

	if err = tx.Commit(ctx); err != nil {
		return lifecycle.Stats{}, ImportError("commit", err)
	}

	return res, nil
}

// migrate creates or updates tables with GORM AutoMigrate.
func (p *pgImporter) migrate() error {
	pool := p.operator.Pool()
	if pool == nil {
		return iodb.NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err = schema.Migrate(gormDB); err != nil {
		return MigrateError(err)
	}
	return nil
}

// copyRows sends rows with pgx CopyFrom in batches.
func (p *pgImporter) copyRows(
	ctx context.Context,
	tx pgx.Tx,
	table string,
	columns []string,
	rows [][]any,
) (int, error) {
	bar := pb.Full.Start(len(rows))
	bar.Set("prefix", "Importing "+table+": ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var count int
	for start := 0; start < len(rows); start += p.batchSize {
		end := min(start+p.batchSize, len(rows))
		n, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{table},
			columns,
			pgx.CopyFromRows(rows[start:end]),
		)
		if err != nil {
			return count, ImportError(table, err)
		}
		count += int(n)
		bar.Add(int(n))
	}

	slog.Info("Imported rows",
		"table", table,
		"count", humanize.Comma(int64(count)),
	)
	return count, nil
}
