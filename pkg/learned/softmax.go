package learned

import (
	"math"
	"slices"
)

// SoftmaxParams are coefficients of a multinomial logistic regression
// trained on standardized features.
type SoftmaxParams struct {
	Classes  []string    `yaml:"classes"  json:"classes"`
	Features []string    `yaml:"features" json:"features"`
	Mean     []float64   `yaml:"mean"     json:"mean"`
	Scale    []float64   `yaml:"scale"    json:"scale"`
	Weights  [][]float64 `yaml:"weights"  json:"weights"`
	Bias     []float64   `yaml:"bias"     json:"bias"`
}

// Softmax is a Classifier backed by a multinomial logistic regression.
// It is immutable and safe for concurrent use.
type Softmax struct {
	classes  []string
	features []string
	mean     []float64
	scale    []float64
	weights  [][]float64
	bias     []float64
}

// NewSoftmax validates parameters and creates a classifier.
func NewSoftmax(p SoftmaxParams) (*Softmax, error) {
	nc, nf := len(p.Classes), len(p.Features)
	if nc == 0 {
		return nil, ParamsError("model has no classes")
	}
	if nf == 0 {
		return nil, ParamsError("model has no features")
	}
	seen := make(map[string]struct{}, nc)
	for _, v := range p.Classes {
		if v == "" {
			return nil, ParamsError("class name cannot be empty")
		}
		if _, ok := seen[v]; ok {
			return nil, ParamsError("duplicate class " + v)
		}
		seen[v] = struct{}{}
	}
	if len(p.Mean) != nf || len(p.Scale) != nf {
		return nil, ParamsError("mean and scale must match features")
	}
	for _, v := range p.Scale {
		if v == 0 || !finite(v) {
			return nil, ParamsError("scale values must be finite and non-zero")
		}
	}
	if len(p.Weights) != nc || len(p.Bias) != nc {
		return nil, ParamsError("weights and bias must match classes")
	}
	for _, row := range p.Weights {
		if len(row) != nf {
			return nil, ParamsError("weights row must match features")
		}
		for _, w := range row {
			if !finite(w) {
				return nil, ParamsError("weights must be finite")
			}
		}
	}
	for i := range nf {
		if !finite(p.Mean[i]) {
			return nil, ParamsError("mean values must be finite")
		}
	}
	for _, b := range p.Bias {
		if !finite(b) {
			return nil, ParamsError("bias values must be finite")
		}
	}

	res := Softmax{
		classes:  slices.Clone(p.Classes),
		features: slices.Clone(p.Features),
		mean:     slices.Clone(p.Mean),
		scale:    slices.Clone(p.Scale),
		bias:     slices.Clone(p.Bias),
		weights:  make([][]float64, nc),
	}
	for i, row := range p.Weights {
		res.weights[i] = slices.Clone(row)
	}
	return &res, nil
}

// Classes implements Classifier.
func (s *Softmax) Classes() []string {
	return slices.Clone(s.classes)
}

// Features returns names of expected features.
func (s *Softmax) Features() []string {
	return slices.Clone(s.features)
}

// PredictProba implements Classifier.
func (s *Softmax) PredictProba(x []float64) ([]float64, error) {
	if len(x) != len(s.features) {
		return nil, FeaturesSizeError(len(s.features), len(x))
	}
	z := make([]float64, len(s.classes))
	maxZ := math.Inf(-1)
	for c := range s.classes {
		v := s.bias[c]
		for f, w := range s.weights[c] {
			v += w * (x[f] - s.mean[f]) / s.scale[f]
		}
		z[c] = v
		maxZ = max(maxZ, v)
	}
	var sum float64
	for c := range z {
		z[c] = math.Exp(z[c] - maxZ)
		sum += z[c]
	}
	for c := range z {
		z[c] /= sum
	}
	return z, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
