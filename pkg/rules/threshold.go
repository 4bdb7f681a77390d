package rules

import "github.com/agrosense/fertadvisor/pkg/nutrient"

// Sample values below these limits are considered low.
const (
	LowN = 30.0
	LowP = 15.0
	LowK = 30.0
)

// Advice is a fertilizer with a fixed confidence.
type Advice struct {
	Name       string
	Confidence string
}

// SampleDeficits derives deficits from measured values. Organic carbon
// is not measured, so it is never low.
func SampleDeficits(s nutrient.Sample) Deficits {
	return Deficits{
		N: s.N() < LowN,
		P: s.P() < LowP,
		K: s.K() < LowK,
	}
}

// AdviseSample runs the cascade over a measured sample. It is used
// when the learned classifier is not available and the threshold
// fallback is enabled.
func AdviseSample(s nutrient.Sample) []Advice {
	r := Match(SampleDeficits(s))
	res := make([]Advice, len(r.Fertilizers))
	for i, v := range r.Fertilizers {
		res[i] = Advice{Name: v, Confidence: r.Confidence}
	}
	return res
}
