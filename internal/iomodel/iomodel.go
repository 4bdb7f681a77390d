// Package iomodel loads trained classifier coefficients from a YAML or
// JSON file. This is an impure I/O package.
package iomodel

import (
	"log/slog"
	"os"

	"github.com/agrosense/fertadvisor/pkg/learned"
	"gopkg.in/yaml.v3"
)

// Load reads a model file and builds a softmax classifier. JSON files
// are accepted because JSON is a subset of YAML.
func Load(path string) (*learned.Softmax, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}

	var params learned.SoftmaxParams
	if err = yaml.Unmarshal(data, &params); err != nil {
		return nil, DecodeError(path, err)
	}

	res, err := learned.NewSoftmax(params)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded fertilizer model",
		"path", path,
		"classes", len(res.Classes()),
		"features", res.Features(),
	)
	return res, nil
}
