package engine

import (
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
)

// rawRequest accepts 'state' as another name of 'region'.
type rawRequest struct {
	Region string    `json:"region"`
	State  string    `json:"state"`
	Sample []float64 `json:"sample"`
}

// ParseRequest decodes a JSON request. A null or missing sample stays
// nil, an empty list is kept and rejected later as malformed.
func ParseRequest(data []byte) (Request, error) {
	var raw rawRequest
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &raw); err != nil {
		return Request{}, InvalidRequestError(string(data), err)
	}
	res := Request{Region: raw.Region, Sample: raw.Sample}
	if res.Region == "" {
		res.Region = raw.State
	}
	return res, nil
}

// ParseSample reads comma-separated N,P,K values. An empty string
// means no sample.
func ParseSample(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	res := make([]float64, len(fields))
	for i, v := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, InvalidRequestError(s, err)
		}
		res[i] = f
	}
	return res, nil
}
