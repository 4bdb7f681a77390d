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

	"github.com/agrosense/fertadvisor/pkg/dosage"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getDosageCmd returns the dosage command.
func getDosageCmd() *cobra.Command {
	dosageCmd := &cobra.Command{
		Use:   "dosage NAME...",
		Short: "Resolve application rates of fertilizers",
		Long: `Resolve dosages of fertilizers and amendments the same way the
recommend command does. Names are matched case-insensitively. MOP and
NPK complex fall back to default rates when the table has no match.

Examples:
  fertadvisor dosage urea dap
  fertadvisor dosage npk_complex "zinc sulphate"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDosage(cmd, args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return dosageCmd
}

func runDosage(cmd *cobra.Command, names []string) error {
	_, dosages, err := loadTables(context.Background(), cfg)
	if err != nil {
		return err
	}
	printDosages(cmd.OutOrStdout(), dosages, names)
	return nil
}

func printDosages(w io.Writer, tbl *dosage.Table, names []string) {
	for _, v := range names {
		d, ok := tbl.Resolve(v)
		if !ok {
			d = "no dosage found"
		}
		fmt.Fprintf(w, "%s: %s\n", v, d)
	}
}
