// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"laptudirm.com/x/quiver/internal/config"
	"laptudirm.com/x/quiver/pkg/scores"
)

// addCommonFlags registers the flags shared by the matchup commands. Their
// defaults are only shown in the help: values come from the configuration
// unless a flag is given explicitly.
func addCommonFlags(cmd *cobra.Command) {
	defaults := config.New()

	cmd.Flags().BoolP("remove-errors", "r", false, "Drop rows with missing scores")
	cmd.Flags().StringP("format", "f", defaults.Format, "Output format: tsv, csv, yaml or text")
	cmd.Flags().StringP("output", "o", defaults.Output, "Output directory, - for standard output")
	cmd.Flags().Bool("combined", false, "Also write every division into a single table")
	cmd.Flags().Int("concurrency", 0, "Divisions processed at once (default one per CPU)")
}

// loadConfig loads the configuration and applies the score file argument
// and every flag set on the command line on top of it.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.ScoreFile = args[0]
	}

	flags := cmd.Flags()
	flags.Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "remove-errors":
			cfg.RemoveErrors, _ = flags.GetBool(flag.Name)
		case "format":
			cfg.Format, _ = flags.GetString(flag.Name)
		case "output":
			cfg.Output, _ = flags.GetString(flag.Name)
		case "combined":
			cfg.Combined, _ = flags.GetBool(flag.Name)
		case "concurrency":
			cfg.Concurrency, _ = flags.GetInt(flag.Name)
		case "flight-size":
			cfg.FlightSize, _ = flags.GetInt(flag.Name)
		case "flights":
			cfg.Flights, _ = flags.GetInt(flag.Name)
			if !flags.Changed("flight-size") {
				cfg.FlightSize = 0
			}
		case "algorithm":
			cfg.Algorithm, _ = flags.GetString(flag.Name)
		case "team-size":
			cfg.TeamSize, _ = flags.GetInt(flag.Name)
		case "seed":
			cfg.Seed, _ = flags.GetInt64(flag.Name)
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.WithField("score-file", cfg.ScoreFile).Tracef("configuration: %+v", *cfg)
	return cfg, nil
}

func loadTable(cfg *config.Config) (*scores.Table, error) {
	table, err := scores.Load(cfg.ScoreFile, scores.Options{RemoveErrors: cfg.RemoveErrors})
	if err != nil {
		return nil, err
	}

	logrus.Debugf(
		"loaded %d competitors in %d divisions from %s",
		len(table.Competitors), len(table.Divisions()), cfg.ScoreFile,
	)
	return table, nil
}

// progress shows a spinner on stderr while the given work runs. It stays
// quiet when stderr is not a terminal or when tracing, so the spinner
// never interleaves with log lines.
func progress(message string) (stop func()) {
	if !isatty.IsTerminal(os.Stderr.Fd()) || logrus.IsLevelEnabled(logrus.DebugLevel) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()

	return s.Stop
}
