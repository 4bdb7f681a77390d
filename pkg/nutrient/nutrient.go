// Package nutrient provides soil nutrient vocabulary shared by advisors:
// status labels, the 10-position regional profile and the measured
// N-P-K sample.
//
// This package has no I/O dependencies.
package nutrient

import (
	"math"
	"strings"
)

// Status is a qualitative soil nutrient level.
type Status string

// Ordinal statuses apply to N, P, K and OC.
const (
	VeryLow  Status = "very low"
	Low      Status = "low"
	Medium   Status = "medium"
	High     Status = "high"
	VeryHigh Status = "very high"
)

// Binary statuses apply to micronutrients.
const (
	Deficient  Status = "deficient"
	Sufficient Status = "sufficient"
)

// IsLow is true for 'very low' and 'low'.
func (s Status) IsLow() bool {
	return s == VeryLow || s == Low
}

// Nutrient is a position in a Profile.
type Nutrient int

// Positions of nutrients in a Profile. The order matches the
// columns of the regional deficiency table.
const (
	N Nutrient = iota
	P
	K
	OC
	B
	Cu
	Fe
	Mn
	S
	Zn
)

// ProfileSize is the number of positions in a Profile.
const ProfileSize = 10

var nutrientNames = [ProfileSize]string{
	"N", "P", "K", "OC", "B", "Cu", "Fe", "Mn", "S", "Zn",
}

// String returns the column name of the nutrient.
func (n Nutrient) String() string {
	if n < 0 || int(n) >= ProfileSize {
		return "unknown"
	}
	return nutrientNames[n]
}

// IsMacro is true for N, P, K and organic carbon.
func (n Nutrient) IsMacro() bool {
	return n >= N && n <= OC
}

// Micronutrients returns micronutrient positions in profile order.
func Micronutrients() []Nutrient {
	return []Nutrient{B, Cu, Fe, Mn, S, Zn}
}

// Names returns column names of all profile positions in order.
func Names() []string {
	res := make([]string, ProfileSize)
	copy(res, nutrientNames[:])
	return res
}

// Profile is the deficiency status of a region. The array type keeps
// the length fixed at 10.
type Profile [ProfileSize]Status

// Get returns the status at the given position.
func (p Profile) Get(n Nutrient) Status {
	return p[n]
}

// NewProfile builds a Profile from 10 labels in N, P, K, OC, B, Cu,
// Fe, Mn, S, Zn order. Labels are normalized before validation.
func NewProfile(labels []string) (Profile, error) {
	var res Profile
	if len(labels) != ProfileSize {
		return res, ProfileLengthError(len(labels))
	}
	for i, label := range labels {
		n := Nutrient(i)
		st, err := ParseStatus(n, label)
		if err != nil {
			return res, err
		}
		res[n] = st
	}
	return res, nil
}

// ParseStatus normalizes a label and checks that it belongs to the
// vocabulary of the given nutrient.
func ParseStatus(n Nutrient, label string) (Status, error) {
	st := Status(NormalizeLabel(label))
	if n.IsMacro() {
		switch st {
		case VeryLow, Low, Medium, High, VeryHigh:
			return st, nil
		}
	} else {
		switch st {
		case Deficient, Sufficient:
			return st, nil
		}
	}
	return "", StatusError(n, label)
}

// NormalizeLabel lower-cases a label, treats '_' and '-' as spaces
// and collapses repeated whitespace.
func NormalizeLabel(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Sample is a measured nutrient triple in N, P, K order.
type Sample [3]float64

// NewSample validates raw values. Exactly three finite non-negative
// numbers are accepted.
func NewSample(vals []float64) (Sample, error) {
	var res Sample
	if len(vals) != len(res) {
		return res, MalformedSampleError(vals, "expected 3 values")
	}
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return res, MalformedSampleError(vals, "values must be finite")
		}
		if v < 0 {
			return res, MalformedSampleError(vals, "values must not be negative")
		}
		res[i] = v
	}
	return res, nil
}

// N returns nitrogen value.
func (s Sample) N() float64 { return s[0] }

// P returns phosphorus value.
func (s Sample) P() float64 { return s[1] }

// K returns potassium value.
func (s Sample) K() float64 { return s[2] }

// Slice returns the sample as a slice of features for classifiers.
func (s Sample) Slice() []float64 {
	return []float64{s[0], s[1], s[2]}
}
