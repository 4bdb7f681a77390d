package learned_test

import (
	"testing"

	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/agrosense/fertadvisor/pkg/learned"
	"github.com/agrosense/fertadvisor/pkg/nutrient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() learned.SoftmaxParams {
	return learned.SoftmaxParams{
		Classes:  []string{"Urea", "DAP", "MOP"},
		Features: []string{"N", "P", "K"},
		Mean:     []float64{50, 50, 50},
		Scale:    []float64{10, 10, 10},
		Weights: [][]float64{
			{-2, 0, 0},
			{0, -2, 0},
			{0, 0, -2},
		},
		Bias: []float64{0, 0, 0},
	}
}

func TestSoftmaxPredict(t *testing.T) {
	sm, err := learned.NewSoftmax(testParams())
	require.NoError(t, err)
	assert.Equal(t, []string{"Urea", "DAP", "MOP"}, sm.Classes())
	assert.Equal(t, []string{"N", "P", "K"}, sm.Features())

	proba, err := sm.PredictProba([]float64{10, 60, 60})
	require.NoError(t, err)
	require.Len(t, proba, 3)
	var sum float64
	for _, p := range proba {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Greater(t, proba[0], proba[1])
	assert.InDelta(t, proba[1], proba[2], 1e-12)

	res, err := learned.New(sm).Advise(nutrient.Sample{60, 60, 10})
	require.NoError(t, err)
	assert.Equal(t, "MOP", res[0].Name)
	assert.Equal(t, "Urea", res[1].Name, "ties keep class order")
	assert.Equal(t, "DAP", res[2].Name)
}

func TestSoftmaxLargeLogits(t *testing.T) {
	p := testParams()
	p.Bias = []float64{1000, 0, -1000}
	sm, err := learned.NewSoftmax(p)
	require.NoError(t, err)
	proba, err := sm.PredictProba([]float64{50, 50, 50})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, proba[0], 1e-9)
	assert.InDelta(t, 0.0, proba[2], 1e-9)
}

func TestSoftmaxFeaturesSize(t *testing.T) {
	sm, err := learned.NewSoftmax(testParams())
	require.NoError(t, err)
	_, err = sm.PredictProba([]float64{1, 2})
	assert.Equal(t, errcode.PredictionError, errcode.Of(err))
}

func TestNewSoftmaxValidation(t *testing.T) {
	tests := []struct {
		msg    string
		modify func(*learned.SoftmaxParams)
	}{
		{"no classes", func(p *learned.SoftmaxParams) { p.Classes = nil }},
		{"no features", func(p *learned.SoftmaxParams) { p.Features = nil }},
		{"empty class", func(p *learned.SoftmaxParams) { p.Classes[1] = "" }},
		{"duplicate class", func(p *learned.SoftmaxParams) { p.Classes[2] = "Urea" }},
		{"short mean", func(p *learned.SoftmaxParams) { p.Mean = p.Mean[:2] }},
		{"zero scale", func(p *learned.SoftmaxParams) { p.Scale[0] = 0 }},
		{"missing weights row", func(p *learned.SoftmaxParams) { p.Weights = p.Weights[:2] }},
		{"short weights row", func(p *learned.SoftmaxParams) { p.Weights[0] = []float64{1} }},
		{"short bias", func(p *learned.SoftmaxParams) { p.Bias = nil }},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			p := testParams()
			v.modify(&p)
			_, err := learned.NewSoftmax(p)
			require.Error(t, err)
			assert.Equal(t, errcode.ModelFormatError, errcode.Of(err))
		})
	}
}
