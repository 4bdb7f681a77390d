package ioref_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/agrosense/fertadvisor/internal/ioref"
	"github.com/agrosense/fertadvisor/pkg/config"
	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/agrosense/fertadvisor/pkg/nutrient"
	"github.com/agrosense/fertadvisor/pkg/schema"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var (
	deficiencyCSV = filepath.Join("..", "..", "testdata", "state_soil_summary.csv")
	dosageCSV     = filepath.Join("..", "..", "testdata", "dosage_recommendation.csv")
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestCSVProfiles(t *testing.T) {
	ctx := context.Background()
	src := ioref.NewCSV(deficiencyCSV, dosageCSV)
	defer src.Close()

	tbl, err := src.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, tbl.Len())
	assert.Equal(t, "Rajasthan", tbl.Regions()[0])

	p, err := tbl.Lookup("Rajasthan")
	require.NoError(t, err)
	assert.Equal(t, nutrient.Low, p.Get(nutrient.N))
	assert.Equal(t, nutrient.VeryLow, p.Get(nutrient.OC))
	assert.Equal(t, nutrient.Deficient, p.Get(nutrient.B))
	assert.Equal(t, nutrient.Sufficient, p.Get(nutrient.Cu))

	p, err = tbl.Lookup("Himachal Pradesh")
	require.NoError(t, err)
	assert.Equal(t, nutrient.VeryHigh, p.Get(nutrient.OC))
}

func TestCSVDosages(t *testing.T) {
	ctx := context.Background()
	src := ioref.NewCSV(deficiencyCSV, dosageCSV)

	tbl, err := src.Dosages(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, tbl.Len())

	dose, ok := tbl.Resolve("urea")
	require.True(t, ok)
	assert.Equal(t, "100-150 kg/ha", dose)

	dose, ok = tbl.Resolve("npk_complex")
	require.True(t, ok)
	assert.Equal(t, "120-180 kg/ha", dose)
}

func TestCSVHeaders(t *testing.T) {
	ctx := context.Background()

	t.Run("alternative names and BOM", func(t *testing.T) {
		path := writeFile(t, "soil.csv",
			"\uFEFFregion , n,p,k,oc,b,cu,fe,mn,s,zn\n"+
				"Goa,high,high,high,high,"+
				"sufficient,sufficient,sufficient,sufficient,sufficient,sufficient\n")
		tbl, err := ioref.NewCSV(path, dosageCSV).Profiles(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Goa"}, tbl.Regions())
	})

	t.Run("missing column", func(t *testing.T) {
		path := writeFile(t, "soil.csv",
			"State/UT,N,P,K,OC,B,Cu,Fe,Mn,S\nGoa,high,high,high,high,"+
				"sufficient,sufficient,sufficient,sufficient,sufficient\n")
		_, err := ioref.NewCSV(path, dosageCSV).Profiles(ctx)
		require.Error(t, err)
		assert.Equal(t, errcode.TableLoadError, errcode.Of(err))
	})

	t.Run("missing dosage column", func(t *testing.T) {
		path := writeFile(t, "dosage.csv", "fertilizers,rate\nUrea,1 kg/ha\n")
		_, err := ioref.NewCSV(deficiencyCSV, path).Dosages(ctx)
		require.Error(t, err)
		assert.Equal(t, errcode.TableLoadError, errcode.Of(err))
	})
}

func TestCSVErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		msg     string
		content string
		code    gn.ErrorCode
	}{
		{"empty file", "", errcode.TableLoadError},
		{"header only", "State/UT,N,P,K,OC,B,Cu,Fe,Mn,S,Zn\n", errcode.TableLoadError},
		{"bad label",
			"State/UT,N,P,K,OC,B,Cu,Fe,Mn,S,Zn\n" +
				"Goa,high,high,high,moderate," +
				"sufficient,sufficient,sufficient,sufficient,sufficient,sufficient\n",
			errcode.TableLoadError},
		{"duplicate region",
			"State/UT,N,P,K,OC,B,Cu,Fe,Mn,S,Zn\n" +
				"Goa,high,high,high,high," +
				"sufficient,sufficient,sufficient,sufficient,sufficient,sufficient\n" +
				"Goa,low,low,low,low," +
				"deficient,deficient,deficient,deficient,deficient,deficient\n",
			errcode.TableLoadError},
		{"short record",
			"State/UT,N,P,K,OC,B,Cu,Fe,Mn,S,Zn\nGoa,high\n",
			errcode.TableLoadError},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			path := writeFile(t, "soil.csv", v.content)
			_, err := ioref.NewCSV(path, dosageCSV).Profiles(ctx)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, v.code, gnErr.Code)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "none.csv")
		_, err := ioref.NewCSV(missing, dosageCSV).Profiles(ctx)
		require.Error(t, err)
		assert.Equal(t, errcode.ReadFileError, errcode.Of(err))
	})
}

func TestSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ref.sqlite")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	for _, m := range schema.DDLModels() {
		_, err = db.Exec(m.TableDDL())
		require.NoError(t, err)
	}
	_, err = db.Exec(`INSERT INTO region_profiles
		(id, ordinal, region, n, p, k, oc, b, cu, fe, mn, s, zn) VALUES
		('b', 2, 'Kerala', 'medium', 'medium', 'low', 'high',
		 'deficient', 'sufficient', 'sufficient', 'sufficient', 'sufficient', 'deficient'),
		('a', 1, 'Bihar', 'low', 'low', 'low', 'low',
		 'deficient', 'sufficient', 'sufficient', 'sufficient', 'deficient', 'deficient')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO dosages (id, ordinal, name, dosage) VALUES
		('c', 1, 'Urea', '100-150 kg/ha'),
		('d', 2, 'MOP', '60-90 kg/ha')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	src, err := ioref.NewSQLite(path)
	require.NoError(t, err)
	defer src.Close()

	profiles, err := src.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bihar", "Kerala"}, profiles.Regions())

	dosages, err := src.Dosages(ctx)
	require.NoError(t, err)
	dose, ok := dosages.Resolve("mop")
	require.True(t, ok)
	assert.Equal(t, "60-90 kg/ha", dose)
}

func TestSQLiteMissingFile(t *testing.T) {
	_, err := ioref.NewSQLite(filepath.Join(t.TempDir(), "none.sqlite"))
	require.Error(t, err)
	assert.Equal(t, errcode.ReadFileError, errcode.Of(err))
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("csv", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptTablesDir(filepath.Join("..", "..", "testdata")),
		})
		src, err := ioref.New(ctx, cfg)
		require.NoError(t, err)
		defer src.Close()
		tbl, err := src.Profiles(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, tbl.Len())
	})

	t.Run("unknown source", func(t *testing.T) {
		cfg := config.New()
		cfg.Tables.Source = "mysql"
		_, err := ioref.New(ctx, cfg)
		require.Error(t, err)
		assert.Equal(t, errcode.TableLoadError, errcode.Of(err))
	})
}

type stubOperator struct {
	tables map[string]bool
	closed bool
}

func (s *stubOperator) Connect(context.Context, *config.DatabaseConfig) error {
	return nil
}

func (s *stubOperator) Close() error {
	s.closed = true
	return nil
}

func (s *stubOperator) Pool() *pgxpool.Pool { return nil }

func (s *stubOperator) TableExists(_ context.Context, name string) (bool, error) {
	return s.tables[name], nil
}

func TestPostgresMissingTables(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	cfg := config.New()

	op := &stubOperator{
		tables: map[string]bool{schema.RegionProfile{}.TableName(): true},
	}
	src, err := ioref.NewPostgres(ctx, op, &cfg.Database)
	assert.Nil(src)
	require.Error(t, err)
	assert.Equal(errcode.TableLoadError, errcode.Of(err))
	assert.Contains(err.(*gn.Error).Err.Error(), schema.Dosage{}.TableName())
	assert.True(op.closed)

	op = &stubOperator{tables: map[string]bool{
		schema.RegionProfile{}.TableName(): true,
		schema.Dosage{}.TableName():        true,
	}}
	src, err = ioref.NewPostgres(ctx, op, &cfg.Database)
	require.NoError(t, err)
	assert.NotNil(src)
	assert.False(op.closed)
}
