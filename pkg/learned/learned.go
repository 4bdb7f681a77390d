// Package learned wraps a probabilistic multi-class classifier that
// recommends fertilizers from measured N-P-K values.
package learned

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"github.com/agrosense/fertadvisor/pkg/nutrient"
)

// TopN is the number of classes returned by the advisor.
const TopN = 3

// Classifier predicts class probabilities for a feature vector.
type Classifier interface {
	// Classes returns class labels in the order of predicted
	// probabilities.
	Classes() []string

	// PredictProba returns one probability per class.
	PredictProba(features []float64) ([]float64, error)
}

// Ranked is a class with its probability and its rendered confidence.
type Ranked struct {
	Name        string
	Probability float64
	Confidence  string
}

// Advisor ranks classifier output.
type Advisor struct {
	clf Classifier
}

// New creates an Advisor. A nil classifier makes the advisor
// unavailable.
func New(clf Classifier) *Advisor {
	return &Advisor{clf: clf}
}

// Available is true when a classifier is loaded.
func (a *Advisor) Available() bool {
	return a != nil && a.clf != nil
}

// probTolerance absorbs float rounding in probabilities that sum to one.
const probTolerance = 1e-9

// Advise returns up to TopN classes by descending probability. Ties
// keep the classifier's class order.
func (a *Advisor) Advise(s nutrient.Sample) ([]Ranked, error) {
	if !a.Available() {
		return nil, ModelUnavailableError(nil)
	}

	classes := a.clf.Classes()
	proba, err := a.clf.PredictProba(s.Slice())
	if err != nil {
		return nil, PredictionError(err)
	}
	if len(proba) != len(classes) {
		return nil, ProbabilitiesSizeError(len(classes), len(proba))
	}
	for i, p := range proba {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1+probTolerance {
			return nil, ProbabilityValueError(classes[i], p)
		}
	}

	idx := make([]int, len(proba))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(proba[b], proba[a])
	})

	n := min(TopN, len(idx))
	res := make([]Ranked, n)
	for i, j := range idx[:n] {
		res[i] = Ranked{
			Name:        classes[j],
			Probability: proba[j],
			Confidence:  Percent(proba[j]),
		}
	}
	return res, nil
}

// Percent renders a probability as a percentage rounded to two
// decimals, e.g. 0.87654 becomes '87.65%'.
func Percent(p float64) string {
	v := math.Round(p*10000) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
