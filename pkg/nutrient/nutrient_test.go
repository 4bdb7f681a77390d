package nutrient_test

import (
	"errors"
	"math"
	"testing"

	"github.com/agrosense/fertadvisor/pkg/errcode"
	"github.com/agrosense/fertadvisor/pkg/nutrient"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		msg, input, res string
	}{
		{"plain", "low", "low"},
		{"upper", "Very Low", "very low"},
		{"underscore", "very_low", "very low"},
		{"dash", "VERY-HIGH", "very high"},
		{"spaces", "  very   high ", "very high"},
		{"empty", "", ""},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, nutrient.NormalizeLabel(v.input), v.msg)
	}
}

func TestNewProfile(t *testing.T) {
	t.Run("valid labels", func(t *testing.T) {
		labels := []string{
			"low", "Low", "medium", "very_high",
			"deficient", "sufficient", "Sufficient",
			"sufficient", "deficient", "sufficient",
		}
		p, err := nutrient.NewProfile(labels)
		require.NoError(t, err)
		assert.Equal(t, nutrient.Low, p.Get(nutrient.N))
		assert.Equal(t, nutrient.Low, p.Get(nutrient.P))
		assert.Equal(t, nutrient.Medium, p.Get(nutrient.K))
		assert.Equal(t, nutrient.VeryHigh, p.Get(nutrient.OC))
		assert.Equal(t, nutrient.Deficient, p.Get(nutrient.B))
		assert.Equal(t, nutrient.Deficient, p.Get(nutrient.S))
		assert.Equal(t, nutrient.Sufficient, p.Get(nutrient.Zn))
	})

	tests := []struct {
		msg    string
		labels []string
	}{
		{"too short", []string{"low", "low"}},
		{"too long", make([]string, 11)},
		{"binary label for macro", []string{
			"deficient", "low", "low", "low",
			"deficient", "deficient", "deficient",
			"deficient", "deficient", "deficient",
		}},
		{"ordinal label for micro", []string{
			"low", "low", "low", "low",
			"low", "deficient", "deficient",
			"deficient", "deficient", "deficient",
		}},
		{"unknown label", []string{
			"low", "low", "low", "moderate",
			"deficient", "deficient", "deficient",
			"deficient", "deficient", "deficient",
		}},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := nutrient.NewProfile(v.labels)
			require.Error(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, errcode.InvalidProfileError, gnErr.Code)
			assert.ErrorIs(t, gnErr.Err, nutrient.ErrInvalidProfile)
		})
	}
}

func TestStatusIsLow(t *testing.T) {
	assert.True(t, nutrient.VeryLow.IsLow())
	assert.True(t, nutrient.Low.IsLow())
	assert.False(t, nutrient.Medium.IsLow())
	assert.False(t, nutrient.High.IsLow())
	assert.False(t, nutrient.VeryHigh.IsLow())
	assert.False(t, nutrient.Deficient.IsLow())
}

func TestNutrientNames(t *testing.T) {
	assert.Equal(t, "OC", nutrient.OC.String())
	assert.Equal(t, "Zn", nutrient.Zn.String())
	assert.Equal(t, "unknown", nutrient.Nutrient(10).String())
	assert.Equal(t,
		[]string{"N", "P", "K", "OC", "B", "Cu", "Fe", "Mn", "S", "Zn"},
		nutrient.Names(),
	)
	assert.Len(t, nutrient.Micronutrients(), 6)
}

func TestNewSample(t *testing.T) {
	s, err := nutrient.NewSample([]float64{10, 60, 80})
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.N())
	assert.Equal(t, 60.0, s.P())
	assert.Equal(t, 80.0, s.K())
	assert.Equal(t, []float64{10, 60, 80}, s.Slice())

	tests := []struct {
		msg  string
		vals []float64
	}{
		{"empty", nil},
		{"two values", []float64{1, 2}},
		{"four values", []float64{1, 2, 3, 4}},
		{"NaN", []float64{1, math.NaN(), 3}},
		{"Inf", []float64{1, 2, math.Inf(1)}},
		{"negative", []float64{-1, 2, 3}},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			_, err := nutrient.NewSample(v.vals)
			require.Error(t, err)
			assert.Equal(t, errcode.MalformedSampleError, errcode.Of(err))
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.True(t, errors.Is(gnErr.Err, nutrient.ErrMalformedSample))
		})
	}
}
