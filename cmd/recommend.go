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
	"fmt"
	"log/slog"

	"github.com/agrosense/fertadvisor/pkg/engine"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getRecommendCmd returns the recommend command.
func getRecommendCmd() *cobra.Command {
	var (
		region string
		sample string
		pretty bool
	)

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend fertilizers for a region or a soil sample",
		Long: `Recommend fertilizers, micronutrient amendments and dosages.

With --sample the trained model ranks fertilizers for measured N, P and K
values. Without the model the regional rules are used when --region is
given as well. With --region only, the soil profile of the region goes
through the agronomic rules.

Examples:
  fertadvisor recommend --region Rajasthan
  fertadvisor recommend --sample 20,12,40
  fertadvisor recommend --region Punjab --sample 20,12,40 --pretty`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRecommend(cmd, region, sample, pretty)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	recommendCmd.Flags().StringVarP(
		&region, "region", "r", "", "state or union territory name",
	)
	recommendCmd.Flags().StringVarP(
		&sample, "sample", "s", "", "measured N,P,K values",
	)
	recommendCmd.Flags().BoolVarP(
		&pretty, "pretty", "p", false, "pretty-print JSON output",
	)

	return recommendCmd
}

func runRecommend(
	cmd *cobra.Command,
	region, sample string,
	pretty bool,
) error {
	vals, err := engine.ParseSample(sample)
	if err != nil {
		return err
	}

	eng, err := loadEngine(context.Background(), cfg)
	if err != nil {
		return err
	}

	res, err := eng.Recommend(engine.Request{Region: region, Sample: vals})
	if err != nil {
		return err
	}
	slog.Debug("Recommendation ready",
		"strategy", res.Strategy,
		"fertilizers", res.FertilizerNames(),
	)

	out, err := gnfmt.GNjson{Pretty: pretty}.Encode(res)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
