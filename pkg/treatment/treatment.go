// Package treatment lists names of fertilizers and amendments produced
// by advisors and understood by the dosage resolver.
package treatment

// Primary fertilizers.
const (
	Urea          = "urea"
	DAP           = "dap"
	SSP           = "ssp"
	MOP           = "mop"
	NPKComplex    = "npk_complex"
	OrganicMatter = "organic matter"
)

// Micronutrient amendments.
const (
	Borax             = "borax"
	CopperSulphate    = "copper sulphate"
	FerrousSulphate   = "ferrous sulphate"
	ManganeseSulphate = "manganese sulphate"
	SulphurBentonite  = "sulphur bentonite"
	ZincSulphate      = "zinc sulphate"
)

// Sentinels.
const (
	NoFertilizerNeeded    = "no fertilizer needed"
	NoRecommendation      = "no recommendation"
	NoMicronutrientNeeded = "no micronutrient needed"
)
