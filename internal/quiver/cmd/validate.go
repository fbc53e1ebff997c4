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

	"github.com/spf13/cobra"

	"laptudirm.com/x/quiver/pkg/scores"
)

// quiver validate
func Validate() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [score-file]",
		Short: "Check a score file for rows with missing scores",
		Args:  cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			table, err := scores.Load(cfg.ScoreFile, scores.Options{})
			if err != nil {
				return err
			}

			if len(table.Issues) == 0 {
				fmt.Printf(
					"\x1b[32mNo issues found\x1b[0m in %d rows across %d divisions.\n",
					len(table.Competitors), len(table.Divisions()),
				)
				return nil
			}

			fmt.Println("\x1b[31mRows with missing scores\x1b[0m:")
			for _, issue := range table.Issues {
				fmt.Printf("- %s\n", issue)
			}

			return fmt.Errorf("validate %s: %d rows have missing scores", cfg.ScoreFile, len(table.Issues))
		},
	}
}
