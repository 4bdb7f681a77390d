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
	"io"

	"github.com/agrosense/fertadvisor/pkg/engine"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getStatusCmd returns the status command.
func getStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show reference data and model status",
		Long: `Load reference tables and the model the same way recommend does
and report what is available.`,
		Aliases: []string{"health"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStatus(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return statusCmd
}

func runStatus(cmd *cobra.Command) error {
	eng, err := loadEngine(context.Background(), cfg)
	if err != nil {
		return err
	}
	printStatus(cmd.OutOrStdout(), cfg.Tables.Source, eng.Status())
	return nil
}

func printStatus(w io.Writer, source string, st engine.Status) {
	model := "loaded"
	if !st.ModelLoaded {
		model = "not loaded"
	}
	fmt.Fprintf(w, "Tables source:      %s\n", source)
	fmt.Fprintf(w, "Regions:            %s\n", humanize.Comma(int64(st.Regions)))
	fmt.Fprintf(w, "Dosage rows:        %s\n", humanize.Comma(int64(st.Dosages)))
	fmt.Fprintf(w, "Model:              %s\n", model)
	if st.ModelError != "" {
		fmt.Fprintf(w, "Model error:        %s\n", st.ModelError)
	}
	fmt.Fprintf(w, "Threshold fallback: %t\n", st.ThresholdFallback)
}
