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
	"github.com/spf13/cobra"

	"laptudirm.com/x/quiver/pkg/export"
	"laptudirm.com/x/quiver/pkg/matchup"
)

// quiver teams
func Teams() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams [score-file]",
		Short: "Form seeded elimination teams for every division",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`teams ranks the archers of every division by their
			qualifying score and forms balanced teams of two or three.

			Teams of two pair the best remaining archer with the worst
			one; a division with an odd number of archers gets a Gunrock
			placeholder. Teams of three take one archer from each third
			of the division, with the middle third shuffled using --seed.
			When a division does not divide by three, the leftovers shoot
			in teams of two.

			The finished teams are seeded by their combined score.`),

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

			stop := progress("Forming teams")
			divisions, err := matchup.Eliminations(cmd.Context(), table, matchup.TeamOptions{
				TeamSize:    cfg.TeamSize,
				Seed:        cfg.Seed,
				Concurrency: cfg.Concurrency,
			})
			stop()
			if err != nil {
				return err
			}

			if cfg.Output == "-" {
				if format == export.Text && !cfg.Combined {
					for division, list := range orderedLists(divisions) {
						fmt.Printf("\x1b[34mDivision: %s\x1b[0m\n", divisions[division].Division)
						for _, team := range list {
							fmt.Println("  " + team)
						}
					}

					return nil
				}

				return export.WriteTeams(os.Stdout, format, divisions)
			}

			paths, err := export.TeamFiles(cfg.Output, format, divisions)
			if err != nil {
				return err
			}

			if cfg.Combined {
				path := filepath.Join(cfg.Output, "teams"+format.Extension())
				if err := writeWith(path, func(file *os.File) error {
					return export.WriteTeams(file, format, divisions)
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
	cmd.Flags().IntP("team-size", "k", 2, "Archers per team, 2 or 3")
	cmd.Flags().Int64("seed", 1, "Seed for the middle third shuffle of teams of three")

	return cmd
}

// orderedLists returns the team lists in division order.
func orderedLists(divisions []matchup.DivisionTeams) [][]string {
	lists := export.TeamLists(divisions)

	ordered := make([][]string, len(divisions))
	for i, division := range divisions {
		ordered[i] = lists[division.Division]
	}

	return ordered
}
