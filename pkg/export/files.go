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

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"laptudirm.com/x/quiver/pkg/matchup"
)

// FilePermissions is used for every directory and file written.
const FilePermissions = 0755

// FlightFileName returns the name of the file a flight's schedule is
// written to.
func FlightFileName(flight matchup.FlightSchedule, format Format) string {
	return fmt.Sprintf("%s-Flight%d%s", fileSafe(flight.Division), flight.Flight, format.Extension())
}

// TeamFileName returns the name of the file a division's teams are
// written to.
func TeamFileName(division string, format Format) string {
	return fmt.Sprintf("%s-Teams%s", fileSafe(division), format.Extension())
}

// division names like U18/Women must not turn into subdirectories
var separators = strings.NewReplacer("/", "_", `\`, "_")

func fileSafe(division string) string {
	return separators.Replace(division)
}

// RobinFiles writes every flight's bale table into its own file inside
// dir, creating it if needed. It returns the paths written.
func RobinFiles(dir string, format Format, divisions []matchup.DivisionSchedule) ([]string, error) {
	if err := os.MkdirAll(dir, FilePermissions); err != nil {
		return nil, err
	}

	var paths []string
	for _, division := range divisions {
		for _, flight := range division.Flights {
			path := filepath.Join(dir, FlightFileName(flight, format))
			header, rows := flight.Rounds.Table()
			if err := writeFile(path, format, header, rows); err != nil {
				return paths, err
			}

			paths = append(paths, path)
		}
	}

	return paths, nil
}

// RobinCombined writes the bale tables of every flight stacked into one
// table, tagged with Division and Flight Number columns.
func RobinCombined(w io.Writer, format Format, divisions []matchup.DivisionSchedule) error {
	header, rows := CombinedTable(divisions)
	return WriteTable(w, format, header, rows)
}

// CombinedTable stacks the bale tables of every flight. Flights with fewer
// rounds than the longest one get empty cells for the missing rounds.
func CombinedTable(divisions []matchup.DivisionSchedule) (header []string, rows [][]string) {
	widest := []string{"Bale"}
	for _, division := range divisions {
		for _, flight := range division.Flights {
			if flightHeader, _ := flight.Rounds.Table(); len(flightHeader) > len(widest) {
				widest = flightHeader
			}
		}
	}

	header = append(append([]string(nil), widest...), "Division", "Flight Number")
	for _, division := range divisions {
		for _, flight := range division.Flights {
			_, flightRows := flight.Rounds.Table()
			for _, flightRow := range flightRows {
				row := make([]string, len(header))
				copy(row, flightRow)
				row[len(widest)] = division.Division
				row[len(widest)+1] = fmt.Sprint(flight.Flight)
				rows = append(rows, row)
			}
		}
	}

	return header, rows
}

// TeamTable lays out the seeded teams of every division, one row per team.
func TeamTable(divisions []matchup.DivisionTeams) (header []string, rows [][]string) {
	header = []string{"Division", "Seed", "Aggregate", "Members"}
	for _, division := range divisions {
		for _, team := range division.Teams {
			members := make([]string, len(team.Members))
			for i, member := range team.Members {
				members[i] = member.String()
			}

			rows = append(rows, []string{
				division.Division,
				fmt.Sprint(team.Seed),
				fmt.Sprint(team.Aggregate),
				strings.Join(members, " / "),
			})
		}
	}

	return header, rows
}

// TeamLists returns the display string of every team, in seed order, by
// division.
func TeamLists(divisions []matchup.DivisionTeams) map[string][]string {
	lists := make(map[string][]string, len(divisions))
	for _, division := range divisions {
		list := make([]string, len(division.Teams))
		for i, team := range division.Teams {
			list[i] = team.String()
		}

		lists[division.Division] = list
	}

	return lists
}

// WriteTeams writes the team table of every division.
func WriteTeams(w io.Writer, format Format, divisions []matchup.DivisionTeams) error {
	header, rows := TeamTable(divisions)
	return WriteTable(w, format, header, rows)
}

// TeamFiles writes the team table of every division into its own file
// inside dir. It returns the paths written.
func TeamFiles(dir string, format Format, divisions []matchup.DivisionTeams) ([]string, error) {
	if err := os.MkdirAll(dir, FilePermissions); err != nil {
		return nil, err
	}

	var paths []string
	for _, division := range divisions {
		path := filepath.Join(dir, TeamFileName(division.Division, format))
		header, rows := TeamTable([]matchup.DivisionTeams{division})
		if err := writeFile(path, format, header, rows); err != nil {
			return paths, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func writeFile(path string, format Format, header []string, rows [][]string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FilePermissions)
	if err != nil {
		return err
	}

	if err := WriteTable(file, format, header, rows); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	logrus.Debugf("wrote %s", path)
	return file.Close()
}
