/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"

	"github.com/agrosense/fertadvisor/internal/iomodel"
	"github.com/agrosense/fertadvisor/internal/ioref"
	"github.com/agrosense/fertadvisor/pkg/config"
	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/dosage"
	"github.com/agrosense/fertadvisor/pkg/engine"
	"github.com/agrosense/fertadvisor/pkg/learned"
	"golang.org/x/sync/errgroup"
)

// loadTables reads both reference tables from the configured source.
func loadTables(
	ctx context.Context,
	cfg *config.Config,
) (*deficiency.Table, *dosage.Table, error) {
	src, err := ioref.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	defer src.Close()

	var (
		profiles *deficiency.Table
		dosages  *dosage.Table
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profiles, err = src.Profiles(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		dosages, err = src.Dosages(ctx)
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, nil, err
	}
	return profiles, dosages, nil
}

// loadEngine loads reference tables and the model concurrently. Table
// errors are fatal. A model that cannot be loaded leaves the engine
// without the learned advisor.
func loadEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, error) {
	var res engine.Resources

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.Profiles, res.Dosages, err = loadTables(ctx, cfg)
		return err
	})
	g.Go(func() error {
		clf, err := iomodel.Load(cfg.ModelPath())
		if err != nil {
			slog.Warn("Fertilizer model is not loaded",
				"path", cfg.ModelPath(), "error", err)
			res.ModelError = learned.ModelUnavailableError(err)
			return nil
		}
		res.Classifier = clf
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return engine.New(
		res,
		engine.OptSampleThresholdFallback(cfg.Engine.SampleThresholdFallback),
	), nil
}
