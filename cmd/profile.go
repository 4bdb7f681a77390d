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

	"github.com/agrosense/fertadvisor/pkg/deficiency"
	"github.com/agrosense/fertadvisor/pkg/nutrient"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getProfileCmd returns the profile command.
func getProfileCmd() *cobra.Command {
	var list bool

	profileCmd := &cobra.Command{
		Use:   "profile [REGION]",
		Short: "Show the soil-deficiency profile of a region",
		Long: `Show statuses of N, P, K, organic carbon and micronutrients for a
region, or list all known regions with --list.

Region names are matched exactly.

Examples:
  fertadvisor profile Rajasthan
  fertadvisor profile "Himachal Pradesh"
  fertadvisor profile --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runProfile(cmd, args, list)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	profileCmd.Flags().BoolVarP(
		&list, "list", "l", false, "list all regions",
	)

	return profileCmd
}

func runProfile(cmd *cobra.Command, args []string, list bool) error {
	if !list && len(args) == 0 {
		return cmd.Help()
	}

	profiles, _, err := loadTables(context.Background(), cfg)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if list {
		for _, v := range profiles.Regions() {
			fmt.Fprintln(w, v)
		}
		return nil
	}
	return printProfile(w, profiles, args[0])
}

func printProfile(w io.Writer, tbl *deficiency.Table, region string) error {
	p, err := tbl.Lookup(region)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, region)
	for i, name := range nutrient.Names() {
		fmt.Fprintf(w, "  %-3s %s\n", name, p.Get(nutrient.Nutrient(i)))
	}
	return nil
}
