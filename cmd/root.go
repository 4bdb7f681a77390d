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
	"fmt"
	"log/slog"
	"os"

	"github.com/agrosense/fertadvisor/internal/ioconfig"
	"github.com/agrosense/fertadvisor/internal/iofs"
	"github.com/agrosense/fertadvisor/internal/iologger"
	app "github.com/agrosense/fertadvisor/pkg"
	"github.com/agrosense/fertadvisor/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

var (
	homeDir string
	cfgFile string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns a new root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "fertadvisor",
		Short:   "Fertadvisor recommends fertilizers from soil data",
		Long: `Fertadvisor recommends fertilizers and micronutrient amendments
with application dosages.

A recommendation is made either for a region, using its soil-deficiency
profile and an ordered set of agronomic rules, or for a measured N-P-K
sample, using a trained classifier.

Reference tables are read from CSV files, a SQLite file or PostgreSQL.

Configuration precedence (highest to lowest):
  1. CLI flags (--tables-source, --tables-dir, --model)
  2. Environment variables (FERTADVISOR_*)
  3. Config file (~/.config/fertadvisor/config.yaml)
  4. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "fertadvisor version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for fertadvisor")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "",
		"config file (default: ~/.config/fertadvisor/config.yaml)")
	pf.String("tables-source", "", "reference tables source: csv, sqlite, postgres")
	pf.String("tables-dir", "", "directory with reference CSV files")
	pf.String("model", "", "path to the fertilizer model file")

	rootCmd.AddCommand(
		getRecommendCmd(),
		getBatchCmd(),
		getProfileCmd(),
		getDosageCmd(),
		getStatusCmd(),
		getImportCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	path := cfgFile
	if path == "" {
		if err = iofs.EnsureConfigFile(homeDir); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		path = config.ConfigFilePath(homeDir)
	}

	var cfgViper *config.Config
	if cfgViper, err = ioconfig.Load(path); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	opts = append(opts, config.OptHomeDir(homeDir))
	opts = append(opts, flagOptions(cmd)...)
	cfg.Update(opts)

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", path)
	return nil
}

// flagOptions converts explicitly set global flags to options, so they
// override config file and environment values.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("tables-source") {
		s, _ := flags.GetString("tables-source")
		res = append(res, config.OptTablesSource(s))
	}
	if flags.Changed("tables-dir") {
		s, _ := flags.GetString("tables-dir")
		res = append(res, config.OptTablesDir(s))
	}
	if flags.Changed("model") {
		s, _ := flags.GetString("model")
		res = append(res, config.OptModelPath(s))
	}
	return res
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
