package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agrosense/fertadvisor/pkg/config"
	"github.com/agrosense/fertadvisor/pkg/engine"
	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(opts ...config.Option) *config.Config {
	res := config.New()
	res.Update([]config.Option{
		config.OptTablesDir(filepath.Join("..", "testdata")),
	})
	res.Update(opts)
	return res
}

func testEngine(t *testing.T, opts ...config.Option) *engine.Engine {
	t.Helper()
	eng, err := loadEngine(context.Background(), testConfig(opts...))
	require.NoError(t, err)
	return eng
}

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var res []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		res = append(res, m)
	}
	return res
}

func TestLoadEngine(t *testing.T) {
	st := testEngine(t).Status()
	assert.Equal(t, 5, st.Regions)
	assert.Equal(t, 12, st.Dosages)
	assert.True(t, st.ModelLoaded)
	assert.Empty(t, st.ModelError)

	st = testEngine(t, config.OptModelPath("missing.yaml")).Status()
	assert.False(t, st.ModelLoaded)
	assert.NotEmpty(t, st.ModelError)

	_, err := loadEngine(context.Background(),
		testConfig(config.OptTablesDeficiencyFile("missing.csv")))
	require.Error(t, err)
	assert.Equal(t, errcode.ReadFileError, errcode.Of(err))
}

func TestProcessBatch(t *testing.T) {
	input := strings.Join([]string{
		`{"region": "Rajasthan"}`,
		``,
		`{"sample": [5, 30, 40]}`,
		`{"state": "Atlantis"}`,
		`not json`,
		`{}`,
		`{"state": "Himachal Pradesh"}`,
	}, "\n")

	var out bytes.Buffer
	stats, err := processBatch(
		context.Background(), testEngine(t), strings.NewReader(input), &out, 3,
	)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.requests)
	assert.Equal(t, 3, stats.failed)

	lines := decodeLines(t, out.String())
	require.Len(t, lines, 6)

	assert.Equal(t, "rule_based", lines[0]["strategy"])
	assert.Equal(t, "Rajasthan", lines[0]["region"])
	assert.Equal(t,
		map[string]any{"organic matter": "", "npk_complex": ""},
		lines[0]["fertilizer"],
	)

	assert.Equal(t, "learned", lines[1]["strategy"])
	ferts, ok := lines[1]["fertilizer"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, ferts, 3)
	assert.Contains(t, ferts, "Urea")

	tests := []struct {
		idx  int
		line float64
		code gn.ErrorCode
	}{
		{2, 4, errcode.RegionNotFoundError},
		{3, 5, errcode.InvalidRequestError},
		{4, 6, errcode.MissingInputError},
	}
	for _, v := range tests {
		assert.Equal(t, v.line, lines[v.idx]["line"])
		assert.Equal(t, float64(v.code), lines[v.idx]["code"])
		assert.NotEmpty(t, lines[v.idx]["error"])
		assert.NotContains(t, lines[v.idx]["error"], "<em>")
	}

	assert.Equal(t, "Himachal Pradesh", lines[5]["region"])
	assert.Equal(t,
		map[string]any{"no fertilizer needed": ""},
		lines[5]["fertilizer"],
	)
}

func TestProcessBatchWithoutModel(t *testing.T) {
	eng := testEngine(t, config.OptModelPath("missing.yaml"))
	input := `{"sample": [5, 30, 40]}
{"region": "Punjab", "sample": [5, 30, 40]}
`
	var out bytes.Buffer
	stats, err := processBatch(
		context.Background(), eng, strings.NewReader(input), &out, 1,
	)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.failed)

	lines := decodeLines(t, out.String())
	require.Len(t, lines, 2)
	assert.Equal(t, float64(errcode.ModelUnavailableError), lines[0]["code"])
	assert.Equal(t, "rule_based", lines[1]["strategy"])
}

func TestProcessBatchOrder(t *testing.T) {
	regions := []string{"Rajasthan", "Punjab", "Kerala", "Bihar"}
	var sb strings.Builder
	for range batchChunk/2 + 3 {
		for _, v := range regions {
			sb.WriteString(`{"region": "` + v + `"}` + "\n")
		}
	}

	var out bytes.Buffer
	stats, err := processBatch(
		context.Background(), testEngine(t),
		strings.NewReader(sb.String()), &out, 8,
	)
	require.NoError(t, err)
	assert.Zero(t, stats.failed)

	lines := decodeLines(t, out.String())
	require.Len(t, lines, stats.requests)
	for i, v := range lines {
		assert.Equal(t, regions[i%len(regions)], v["region"])
	}
}

func TestPrintHelpers(t *testing.T) {
	profiles, dosages, err := loadTables(context.Background(), testConfig())
	require.NoError(t, err)

	t.Run("profile", func(t *testing.T) {
		var buf bytes.Buffer
		err := printProfile(&buf, profiles, "Kerala")
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Kerala\n")
		assert.Contains(t, buf.String(), "  K   low\n")
		assert.Contains(t, buf.String(), "  Zn  deficient\n")

		err = printProfile(&buf, profiles, "kerala")
		require.Error(t, err)
		assert.Equal(t, errcode.RegionNotFoundError, errcode.Of(err))
	})

	t.Run("dosage", func(t *testing.T) {
		var buf bytes.Buffer
		printDosages(&buf, dosages, []string{"urea", "npk_complex", "gypsum"})
		assert.Equal(t,
			"urea: 100-150 kg/ha\n"+
				"npk_complex: 120-180 kg/ha\n"+
				"gypsum: no dosage found\n",
			buf.String(),
		)
	})

	t.Run("status", func(t *testing.T) {
		var buf bytes.Buffer
		printStatus(&buf, "csv", engine.Status{
			Regions:    1200,
			Dosages:    12,
			ModelError: "model file is missing",
		})
		assert.Contains(t, buf.String(), "Regions:            1,200\n")
		assert.Contains(t, buf.String(), "Model:              not loaded\n")
		assert.Contains(t, buf.String(), "model file is missing")
	})
}

func TestErrorText(t *testing.T) {
	err := engine.MissingInputError()
	assert.Equal(t, "Provide a region or a sample", errorText(err))
	assert.Equal(t, "plain", errorText(errors.New("plain")))
}
