// Package rules implements the expert-system advisor that maps a
// regional deficiency profile to fertilizer and micronutrient
// recommendations.
//
// The macronutrient decision is an ordered list of rules evaluated
// top to bottom; the first rule whose condition holds produces the
// outcome. Micronutrient amendments are collected independently.
package rules

import (
	"github.com/agrosense/fertadvisor/pkg/nutrient"
	"github.com/agrosense/fertadvisor/pkg/treatment"
)

// Deficits marks which of the macronutrients and organic carbon are low.
type Deficits struct {
	N, P, K, OC bool
}

// DeficitsOf derives deficits from a profile. A nutrient is low when
// its status is 'very low' or 'low'.
func DeficitsOf(p nutrient.Profile) Deficits {
	return Deficits{
		N:  p.Get(nutrient.N).IsLow(),
		P:  p.Get(nutrient.P).IsLow(),
		K:  p.Get(nutrient.K).IsLow(),
		OC: p.Get(nutrient.OC).IsLow(),
	}
}

// NPKCount returns how many of N, P and K are low.
func (d Deficits) NPKCount() int {
	var res int
	for _, v := range []bool{d.N, d.P, d.K} {
		if v {
			res++
		}
	}
	return res
}

// Rule is a named step of the cascade.
type Rule struct {
	// Name identifies the rule in logs and tests.
	Name string
	// When reports whether the rule applies.
	When func(Deficits) bool
	// Fertilizers is the outcome of the rule.
	Fertilizers []string
	// Confidence is used by the threshold advisor only.
	Confidence string
}

// Cascade returns the ordered rule list. A new slice is returned on each
// call so callers cannot change the shared order.
func Cascade() []Rule {
	return []Rule{
		{
			Name: "organic carbon with npk",
			When: func(d Deficits) bool { return d.OC && d.NPKCount() >= 2 },
			Fertilizers: []string{
				treatment.OrganicMatter, treatment.NPKComplex,
			},
		},
		{
			Name:        "organic carbon",
			When:        func(d Deficits) bool { return d.OC },
			Fertilizers: []string{treatment.OrganicMatter},
		},
		{
			Name:        "npk",
			When:        func(d Deficits) bool { return d.N && d.P && d.K },
			Fertilizers: []string{treatment.NPKComplex},
			Confidence:  "95%",
		},
		{
			Name:        "np",
			When:        func(d Deficits) bool { return d.N && d.P },
			Fertilizers: []string{treatment.DAP},
			Confidence:  "90%",
		},
		{
			Name:        "nk",
			When:        func(d Deficits) bool { return d.N && d.K },
			Fertilizers: []string{treatment.NPKComplex},
			Confidence:  "85%",
		},
		{
			Name:        "n",
			When:        func(d Deficits) bool { return d.N },
			Fertilizers: []string{treatment.Urea},
			Confidence:  "90%",
		},
		{
			Name:        "p",
			When:        func(d Deficits) bool { return d.P },
			Fertilizers: []string{treatment.SSP},
			Confidence:  "90%",
		},
		{
			Name:        "k",
			When:        func(d Deficits) bool { return d.K },
			Fertilizers: []string{treatment.MOP},
			Confidence:  "90%",
		},
		{
			Name:        "none",
			When:        func(d Deficits) bool { return !d.N && !d.P && !d.K && !d.OC },
			Fertilizers: []string{treatment.NoFertilizerNeeded},
			Confidence:  "100%",
		},
	}
}

// Match returns the first rule of the cascade that applies. When no rule
// applies the returned rule recommends 'no recommendation'.
func Match(d Deficits) Rule {
	for _, r := range Cascade() {
		if r.When(d) {
			return r
		}
	}
	return Rule{
		Name:        "fallback",
		Fertilizers: []string{treatment.NoRecommendation},
	}
}

// Fertilizers returns the primary fertilizer choice for a profile.
func Fertilizers(p nutrient.Profile) []string {
	r := Match(DeficitsOf(p))
	res := make([]string, len(r.Fertilizers))
	copy(res, r.Fertilizers)
	return res
}

// amendments maps micronutrient positions to their amendments. Keys
// follow the table column order B, Cu, Fe, Mn, S, Zn.
var amendments = map[nutrient.Nutrient]string{
	nutrient.B:  treatment.Borax,
	nutrient.Cu: treatment.CopperSulphate,
	nutrient.Fe: treatment.FerrousSulphate,
	nutrient.Mn: treatment.ManganeseSulphate,
	nutrient.S:  treatment.SulphurBentonite,
	nutrient.Zn: treatment.ZincSulphate,
}

// Micronutrients lists amendments for deficient micronutrients in
// B, Cu, Fe, Mn, S, Zn order, or the 'no micronutrient needed' sentinel.
func Micronutrients(p nutrient.Profile) []string {
	var res []string
	for _, n := range nutrient.Micronutrients() {
		if p.Get(n) == nutrient.Deficient {
			res = append(res, amendments[n])
		}
	}
	if len(res) == 0 {
		return []string{treatment.NoMicronutrientNeeded}
	}
	return res
}

// Advise runs the cascade and the micronutrient check on a profile.
func Advise(p nutrient.Profile) (fertilizers, micronutrients []string) {
	return Fertilizers(p), Micronutrients(p)
}
