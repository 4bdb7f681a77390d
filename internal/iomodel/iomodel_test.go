package iomodel_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agrosense/fertadvisor/internal/iomodel"
	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/agrosense/fertadvisor/pkg/learned"
	"github.com/agrosense/fertadvisor/pkg/nutrient"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var modelYAML = filepath.Join("..", "..", "testdata", "fertilizer_model.yaml")

func TestLoadYAML(t *testing.T) {
	clf, err := iomodel.Load(modelYAML)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Urea", "DAP", "MOP", "14-35-14", "28-28"},
		clf.Classes(),
	)
	assert.Equal(t, []string{"N", "P", "K"}, clf.Features())

	s, err := nutrient.NewSample([]float64{5, 30, 40})
	require.NoError(t, err)
	res, err := learned.New(clf).Advise(s)
	require.NoError(t, err)
	require.Len(t, res, learned.TopN)
	assert.Equal(t, "Urea", res[0].Name)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	content := `{
  "classes": ["Urea", "DAP"],
  "features": ["N", "P", "K"],
  "mean": [0, 0, 0],
  "scale": [1, 1, 1],
  "weights": [[1, 0, 0], [0, 1, 0]],
  "bias": [0, 0]
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	clf, err := iomodel.Load(path)
	require.NoError(t, err)
	proba, err := clf.PredictProba([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, proba, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		msg     string
		content string
		code    gn.ErrorCode
	}{
		{"not yaml", "classes: [Urea\n", errcode.ModelFormatError},
		{"wrong types", "classes: 5\n", errcode.ModelFormatError},
		{"empty model", "{}\n", errcode.ModelFormatError},
		{"mismatched weights",
			"classes: [A, B]\nfeatures: [N]\nmean: [0]\nscale: [1]\n" +
				"weights: [[1]]\nbias: [0, 0]\n",
			errcode.ModelFormatError},
	}

	for i, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			path := filepath.Join(dir, "model"+string(rune('a'+i))+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(v.content), 0644))
			_, err := iomodel.Load(path)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, v.code, gnErr.Code)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := iomodel.Load(filepath.Join(dir, "none.yaml"))
		require.Error(t, err)
		assert.Equal(t, errcode.ModelReadError, errcode.Of(err))
	})
}
