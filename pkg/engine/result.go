package engine

import (
	"bytes"
	"encoding/json"

	"github.com/agrosense/fertadvisor/pkg/dosage"
)

// Strategy names the advisor that produced a Result.
type Strategy string

const (
	StrategyRules     Strategy = "rule_based"
	StrategyLearned   Strategy = "learned"
	StrategyThreshold Strategy = "threshold"
)

// Fertilizer is a recommended fertilizer. Confidence is empty for the
// regional rules.
type Fertilizer struct {
	Name       string
	Confidence string
}

// Result is the outcome of a request.
type Result struct {
	Strategy       Strategy
	Region         string
	Sample         []float64
	Fertilizers    []Fertilizer
	Micronutrients []string
	Dosage         []dosage.Dose
	// Error is set when the learned advisor failed at runtime.
	Error string
}

func newResult(s Strategy, req Request) *Result {
	return &Result{
		Strategy:       s,
		Region:         req.Region,
		Sample:         req.Sample,
		Fertilizers:    []Fertilizer{},
		Micronutrients: []string{},
		Dosage:         []dosage.Dose{},
	}
}

// FertilizerNames returns names of recommended fertilizers in order.
func (r Result) FertilizerNames() []string {
	res := make([]string, len(r.Fertilizers))
	for i, v := range r.Fertilizers {
		res[i] = v.Name
	}
	return res
}

// MarshalJSON renders fertilizers as an ordered name to confidence
// object and dosage as a list of single-key objects.
func (r Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"strategy":`)
	if err := writeJSON(&buf, r.Strategy); err != nil {
		return nil, err
	}
	if r.Region != "" {
		buf.WriteString(`,"region":`)
		if err := writeJSON(&buf, r.Region); err != nil {
			return nil, err
		}
	}
	if r.Sample != nil {
		buf.WriteString(`,"sample":`)
		if err := writeJSON(&buf, r.Sample); err != nil {
			return nil, err
		}
	}

	buf.WriteString(`,"fertilizer":{`)
	for i, v := range r.Fertilizers {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writePair(&buf, v.Name, v.Confidence); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`},"micronutrients":`)
	micros := r.Micronutrients
	if micros == nil {
		micros = []string{}
	}
	if err := writeJSON(&buf, micros); err != nil {
		return nil, err
	}

	buf.WriteString(`,"dosage":[`)
	for i, v := range r.Dosage {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		if err := writePair(&buf, v.Name, v.Dosage); err != nil {
			return nil, err
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	if r.Error != "" {
		buf.WriteString(`,"error":`)
		if err := writeJSON(&buf, r.Error); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writePair(buf *bytes.Buffer, key, val string) error {
	if err := writeJSON(buf, key); err != nil {
		return err
	}
	buf.WriteByte(':')
	return writeJSON(buf, val)
}

func writeJSON(buf *bytes.Buffer, v any) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(bs)
	return nil
}
