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
	"fmt"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/quiver/pkg/export"
	"laptudirm.com/x/quiver/pkg/matchup"
)

// quiver robin
func Robin() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "robin [score-file]",
		Short: "Generate round robin schedules for every division",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`robin ranks the archers of every division by their
			qualifying score, splits each division into flights and
			generates a Berger table round robin schedule for every
			flight.

			The score file is a tab separated (or, for .csv files, comma
			separated) table with Name and Division columns and either a
			QualScore column or the round columns R1 to R10. Flights with
			an odd number of archers get a BYE.

			Each flight is written to <output>/<Division>-Flight<n>, with
			one row per bale and one column per round.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			table, err := loadTable(cfg)
			if err != nil {
				return err
			}

			format, err := export.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}

			stop := progress("Scheduling flights")
			divisions, err := matchup.RoundRobin(cmd.Context(), table, matchup.RobinOptions{
				FlightSize:  cfg.FlightSize,
				Flights:     cfg.Flights,
				Algorithm:   cfg.Algorithm,
				Concurrency: cfg.Concurrency,
			})
			stop()
			if err != nil {
				return err
			}

			if cfg.Output == "-" {
				return printRobin(format, cfg.Combined, divisions)
			}

			paths, err := export.RobinFiles(cfg.Output, format, divisions)
			if err != nil {
				return err
			}

			if cfg.Combined {
				path := filepath.Join(cfg.Output, "matchups"+format.Extension())
				if err := writeWith(path, func(file *os.File) error {
					return export.RobinCombined(file, format, divisions)
				}); err != nil {
					return err
				}

				paths = append(paths, path)
			}

			for _, path := range paths {
				fmt.Printf("\x1b[32mWrote\x1b[0m %s\n", path)
			}

			return nil
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().IntP("flight-size", "s", 0, "Archers per flight (overrides --flights)")
	cmd.Flags().IntP("flights", "n", 2, "Number of flights per division")
	cmd.Flags().StringP("algorithm", "a", "berger", "Round robin algorithm")

	return cmd
}

func printRobin(format export.Format, combined bool, divisions []matchup.DivisionSchedule) error {
	if combined {
		return export.RobinCombined(os.Stdout, format, divisions)
	}

	for _, division := range divisions {
		for _, flight := range division.Flights {
			fmt.Printf("\x1b[34mDivision: %s | Flight: %d\x1b[0m\n", division.Division, flight.Flight)

			header, rows := flight.Rounds.Table()
			if err := export.WriteTable(os.Stdout, format, header, rows); err != nil {
				return err
			}

			fmt.Println()
		}
	}

	return nil
}

func writeWith(path string, write func(*os.File) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := write(file); err != nil {
		file.Close()
		return err
	}

	logrus.Debugf("wrote %s", path)
	return file.Close()
}
