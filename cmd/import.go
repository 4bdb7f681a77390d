/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/agrosense/fertadvisor/internal/iodb"
	"github.com/agrosense/fertadvisor/internal/ioimport"
	"github.com/agrosense/fertadvisor/internal/ioref"
	"github.com/agrosense/fertadvisor/pkg/config"
	"github.com/agrosense/fertadvisor/pkg/lifecycle"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var (
		target     string
		sqlitePath string
	)

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Copy reference CSV tables into SQLite or PostgreSQL",
		Long: `Read the regional deficiency and dosage CSV files, validate them
and store them in a database. Existing rows are replaced.

After import set tables.source to 'sqlite' or 'postgres' to read
reference tables from the database.

Examples:
  fertadvisor import --to sqlite
  fertadvisor import --to sqlite --sqlite-path /srv/fertadvisor/ref.sqlite
  fertadvisor import --to postgres`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runImport(cmd, target, sqlitePath)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().StringVarP(
		&target, "to", "t", "sqlite", "target database: sqlite, postgres",
	)
	importCmd.Flags().StringVar(
		&sqlitePath, "sqlite-path", "", "SQLite file to write",
	)

	return importCmd
}

func runImport(cmd *cobra.Command, target, sqlitePath string) error {
	ctx := context.Background()
	start := time.Now()

	if cmd.Flags().Changed("sqlite-path") {
		cfg.Update([]config.Option{config.OptTablesSQLitePath(sqlitePath)})
	}

	imp, closeFn, err := newImporter(ctx, cfg, target)
	if err != nil {
		return err
	}
	defer closeFn()

	src := ioref.NewCSV(cfg.DeficiencyPath(), cfg.DosagePath())
	defer src.Close()
	profiles, err := src.Profiles(ctx)
	if err != nil {
		return err
	}
	dosages, err := src.Dosages(ctx)
	if err != nil {
		return err
	}

	stats, err := imp.Import(ctx, profiles, dosages)
	if err != nil {
		return err
	}

	dur := gnfmt.TimeString(time.Since(start).Seconds())
	slog.Info("Import finished",
		"target", target,
		"profiles", stats.Profiles,
		"dosages", stats.Dosages,
		"duration", dur,
	)
	gn.Info("Imported <em>%s</em> regions and <em>%s</em> dosages in %s",
		humanize.Comma(int64(stats.Profiles)),
		humanize.Comma(int64(stats.Dosages)), dur)
	return nil
}

// newImporter returns an importer for the target and a function that
// releases its resources.
func newImporter(
	ctx context.Context,
	cfg *config.Config,
	target string,
) (lifecycle.Importer, func() error, error) {
	noop := func() error { return nil }
	switch target {
	case "sqlite":
		return ioimport.NewSQLite(cfg.SQLitePath()), noop, nil
	case "postgres":
		op := iodb.NewPgxOperator()
		if err := op.Connect(ctx, &cfg.Database); err != nil {
			return nil, noop, err
		}
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
		return ioimport.NewPostgres(op, cfg.Database.BatchSize), op.Close, nil
	default:
		return nil, noop, ioimport.UnknownTargetError(target)
	}
}
