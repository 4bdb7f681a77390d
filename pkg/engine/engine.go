// Package engine selects a recommendation strategy for a request,
// runs the chosen advisor and attaches dosages to the outcome.
//
// An Engine is built once from immutable reference data and is safe
// for concurrent use. Requests do not share any mutable state.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
	"github.com/agrosense/fertadvisor/pkg/learned"
	"github.com/agrosense/fertadvisor/pkg/nutrient"
	"github.com/agrosense/fertadvisor/pkg/rules"
	"github.com/agrosense/fertadvisor/pkg/treatment"
)

// Resources are reference data and the model the engine works with.
type Resources struct {
	// Profiles is the regional deficiency table.
	Profiles *deficiency.Table
	// Dosages is the dosage table.
	Dosages *dosage.Table
	// Classifier is nil when the model could not be loaded.
	Classifier learned.Classifier
	// ModelError is the reason the model could not be loaded.
	ModelError error
}

// Engine answers recommendation requests.
type Engine struct {
	profiles          *deficiency.Table
	dosages           *dosage.Table
	advisor           *learned.Advisor
	modelErr          error
	thresholdFallback bool
}

// Option configures an Engine.
type Option func(*Engine)

// OptSampleThresholdFallback enables fixed N-P-K thresholds for samples
// that come without a region while the model is unavailable.
func OptSampleThresholdFallback(b bool) Option {
	return func(e *Engine) {
		e.thresholdFallback = b
	}
}

// New creates an Engine. Missing tables are treated as empty.
func New(res Resources, opts ...Option) *Engine {
	e := &Engine{
		profiles: res.Profiles,
		dosages:  res.Dosages,
		advisor:  learned.New(res.Classifier),
		modelErr: res.ModelError,
	}
	if e.profiles == nil {
		e.profiles, _ = deficiency.New(nil)
	}
	if e.dosages == nil {
		e.dosages = dosage.New(nil)
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Request asks for a recommendation by region, by measured sample, or
// both. An empty Region and a nil Sample mean absent values.
type Request struct {
	Region string    `json:"region,omitempty"`
	Sample []float64 `json:"sample,omitempty"`
}

// Recommend selects a strategy and produces a Result.
//
// A sample is validated before anything else. A sample with a loaded
// model uses the learned advisor. A sample without the model falls back
// to the region rules when a region is given, otherwise to thresholds
// when enabled. A region alone uses the rule cascade.
func (e *Engine) Recommend(req Request) (*Result, error) {
	var sample *nutrient.Sample
	if req.Sample != nil {
		s, err := nutrient.NewSample(req.Sample)
		if err != nil {
			return nil, err
		}
		sample = &s
	}
	hasRegion := req.Region != ""

	switch {
	case sample != nil && e.advisor.Available():
		return e.learnedResult(req, *sample), nil
	case sample != nil && hasRegion:
		slog.Warn("Model unavailable, using regional rules",
			"region", req.Region, "error", e.modelError())
		return e.ruleResult(req)
	case sample != nil && e.thresholdFallback:
		slog.Warn("Model unavailable, using sample thresholds",
			"sample", req.Sample, "error", e.modelError())
		return e.thresholdResult(req, *sample), nil
	case sample != nil:
		return nil, e.modelError()
	case hasRegion:
		return e.ruleResult(req)
	default:
		return nil, MissingInputError()
	}
}

func (e *Engine) modelError() error {
	return learned.ModelUnavailableError(e.modelErr)
}

func (e *Engine) ruleResult(req Request) (*Result, error) {
	p, err := e.profiles.Lookup(req.Region)
	if err != nil {
		return nil, err
	}
	names, micros := rules.Advise(p)
	ferts := make([]Fertilizer, len(names))
	for i, v := range names {
		ferts[i] = Fertilizer{Name: v}
	}
	res := newResult(StrategyRules, req)
	res.Fertilizers = ferts
	res.Micronutrients = micros
	res.Dosage = e.dosages.Plan(names, micros)
	return res, nil
}

func (e *Engine) thresholdResult(req Request, s nutrient.Sample) *Result {
	advice := rules.AdviseSample(s)
	ferts := make([]Fertilizer, len(advice))
	names := make([]string, len(advice))
	for i, v := range advice {
		ferts[i] = Fertilizer{Name: v.Name, Confidence: v.Confidence}
		names[i] = v.Name
	}
	micros := []string{treatment.NoMicronutrientNeeded}
	res := newResult(StrategyThreshold, req)
	res.Fertilizers = ferts
	res.Micronutrients = micros
	res.Dosage = e.dosages.Plan(names, micros)
	return res
}

// learnedResult never fails: classifier errors and panics turn into a
// degraded result with the Error field set.
func (e *Engine) learnedResult(req Request, s nutrient.Sample) (res *Result) {
	res = newResult(StrategyLearned, req)
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Classifier panicked", "sample", req.Sample, "panic", r)
			res = degraded(req, fmt.Sprintf("classifier panic: %v", r))
		}
	}()

	ranked, err := e.advisor.Advise(s)
	if err != nil {
		slog.Error("Classifier failed", "sample", req.Sample, "error", err)
		return degraded(req, err.Error())
	}

	ferts := make([]Fertilizer, len(ranked))
	names := make([]string, len(ranked))
	for i, v := range ranked {
		ferts[i] = Fertilizer{Name: v.Name, Confidence: v.Confidence}
		names[i] = v.Name
	}
	micros := []string{treatment.NoMicronutrientNeeded}
	res.Fertilizers = ferts
	res.Micronutrients = micros
	res.Dosage = e.dosages.Plan(names, micros)
	return res
}

func degraded(req Request, msg string) *Result {
	res := newResult(StrategyLearned, req)
	res.Micronutrients = []string{treatment.NoMicronutrientNeeded}
	res.Error = msg
	return res
}

// Status describes loaded resources.
type Status struct {
	Regions           int    `json:"regions"`
	Dosages           int    `json:"dosages"`
	ModelLoaded       bool   `json:"model_loaded"`
	ModelError        string `json:"model_error,omitempty"`
	ThresholdFallback bool   `json:"threshold_fallback"`
}

// Status reports table sizes and model availability.
func (e *Engine) Status() Status {
	res := Status{
		Regions:           e.profiles.Len(),
		Dosages:           e.dosages.Len(),
		ModelLoaded:       e.advisor.Available(),
		ThresholdFallback: e.thresholdFallback,
	}
	if e.modelErr != nil {
		res.ModelError = e.modelErr.Error()
	}
	return res
}
