package ioimport_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agrosense/fertadvisor/internal/iodb"
	"github.com/agrosense/fertadvisor/internal/ioimport"
	"github.com/agrosense/fertadvisor/internal/ioref"
	"github.com/agrosense/fertadvisor/internal/iotesting"
	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTables(t *testing.T) (*deficiency.Table, *dosage.Table) {
	t.Helper()
	ctx := context.Background()
	src := ioref.NewCSV(
		filepath.Join("..", "..", "testdata", "state_soil_summary.csv"),
		filepath.Join("..", "..", "testdata", "dosage_recommendation.csv"),
	)
	profiles, err := src.Profiles(ctx)
	require.NoError(t, err)
	dosages, err := src.Dosages(ctx)
	require.NoError(t, err)
	return profiles, dosages
}

func TestSQLiteImport(t *testing.T) {
	ctx := context.Background()
	profiles, dosages := loadTables(t)
	path := filepath.Join(t.TempDir(), "nested", "ref.sqlite")

	imp := ioimport.NewSQLite(path)
	// second run replaces rows instead of failing on unique keys
	for range 2 {
		stats, err := imp.Import(ctx, profiles, dosages)
		require.NoError(t, err)
		assert.Equal(t, profiles.Len(), stats.Profiles)
		assert.Equal(t, dosages.Len(), stats.Dosages)
	}

	src, err := ioref.NewSQLite(path)
	require.NoError(t, err)
	defer src.Close()

	gotProfiles, err := src.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, profiles.Rows(), gotProfiles.Rows())

	gotDosages, err := src.Dosages(ctx)
	require.NoError(t, err)
	assert.Equal(t, dosages.Rows(), gotDosages.Rows())
}

func TestPostgresImport(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	ctx := context.Background()
	profiles, dosages := loadTables(t)

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	stats, err := ioimport.NewPostgres(op, 2).Import(ctx, profiles, dosages)
	require.NoError(t, err)
	assert.Equal(t, profiles.Len(), stats.Profiles)
	assert.Equal(t, dosages.Len(), stats.Dosages)

	src, err := ioref.NewPostgres(ctx, iodb.NewPgxOperator(), &cfg.Database)
	require.NoError(t, err)
	defer src.Close()

	got, err := src.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, profiles.Regions(), got.Regions())
}

func TestPostgresFailedImportKeepsRows(t *testing.T) {
	cfg := iotesting.TestConfig(t)
	ctx := context.Background()
	profiles, dosages := loadTables(t)

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	imp := ioimport.NewPostgres(op, 5)
	_, err := imp.Import(ctx, profiles, dosages)
	require.NoError(t, err)

	// the name does not fit varchar(255), so COPY fails after truncate
	bad := dosage.New([]dosage.Row{
		{Name: "Urea", Dosage: "1 kg/ha"},
		{Name: strings.Repeat("x", 300), Dosage: "1 kg/ha"},
	})
	_, err = imp.Import(ctx, profiles, bad)
	require.Error(t, err)

	src, err := ioref.NewPostgres(ctx, iodb.NewPgxOperator(), &cfg.Database)
	require.NoError(t, err)
	defer src.Close()

	gotProfiles, err := src.Profiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, profiles.Regions(), gotProfiles.Regions())

	gotDosages, err := src.Dosages(ctx)
	require.NoError(t, err)
	assert.Equal(t, dosages.Rows(), gotDosages.Rows())
}

func TestPostgresNotConnected(t *testing.T) {
	profiles, dosages := loadTables(t)
	_, err := ioimport.NewPostgres(iodb.NewPgxOperator(), 10).
		Import(context.Background(), profiles, dosages)
	require.Error(t, err)
}
