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

package export_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"laptudirm.com/x/quiver/pkg/export"
	"laptudirm.com/x/quiver/pkg/matchup"
	"laptudirm.com/x/quiver/pkg/schedule"
	"laptudirm.com/x/quiver/pkg/scores"
	"laptudirm.com/x/quiver/pkg/teams"
)

func fixture() []matchup.DivisionSchedule {
	four, _ := schedule.Generate([]string{"A", "B", "C", "D"}, "berger")
	two, _ := schedule.Generate([]string{"E", "F"}, "berger")

	return []matchup.DivisionSchedule{
		{
			Division: "BB",
			Flights: []matchup.FlightSchedule{
				{Division: "BB", Flight: 1, Rounds: four},
				{Division: "BB", Flight: 2, Rounds: two},
			},
		},
	}
}

func TestWriteTable(t *testing.T) {
	header := []string{"Bale", "Round 1", "Round 2"}
	rows := [][]string{
		{"1", "A vs B", "A vs C"},
		{"2", "C vs D", ""},
	}

	Convey("Given a bale table", t, func() {
		var out bytes.Buffer

		Convey("TSV output is tab separated with blank cells kept", func() {
			So(export.WriteTable(&out, export.TSV, header, rows), ShouldBeNil)
			So(out.String(), ShouldEqual, "Bale\tRound 1\tRound 2\n1\tA vs B\tA vs C\n2\tC vs D\t\n")
		})

		Convey("CSV output is comma separated", func() {
			So(export.WriteTable(&out, export.CSV, header, rows), ShouldBeNil)
			So(out.String(), ShouldEqual, "Bale,Round 1,Round 2\n1,A vs B,A vs C\n2,C vs D,\n")
		})

		Convey("YAML output is a list of records keyed by column", func() {
			So(export.WriteTable(&out, export.YAML, header, rows), ShouldBeNil)
			So(out.String(), ShouldContainSubstring, "Round 1: A vs B")
			So(out.String(), ShouldContainSubstring, `Bale: "2"`)
			So(out.String(), ShouldContainSubstring, `Round 2: ""`)
		})

		Convey("Text output is a boxed table", func() {
			So(export.WriteTable(&out, export.Text, header, rows), ShouldBeNil)
			lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
			So(lines, ShouldHaveLength, 6)
			So(lines[0], ShouldStartWith, "╔")
			So(lines[1], ShouldEqual, "║ Bale ║ Round 1 ║ Round 2 ║")
			So(lines[4], ShouldEqual, "║ 2    ║ C vs D  ║         ║")
		})

		Convey("Unknown formats are rejected", func() {
			err := export.WriteTable(&out, export.Format("pdf"), header, rows)
			So(errors.Is(err, export.ErrUnknownFormat), ShouldBeTrue)
		})
	})
}

func TestParseFormat(t *testing.T) {
	Convey("Format names are case insensitive", t, func() {
		format, err := export.ParseFormat("CSV")
		So(err, ShouldBeNil)
		So(format, ShouldEqual, export.CSV)
		So(format.Extension(), ShouldEqual, ".csv")
		So(export.Text.Extension(), ShouldEqual, ".txt")

		_, err = export.ParseFormat("pdf")
		So(errors.Is(err, export.ErrUnknownFormat), ShouldBeTrue)
	})
}

func TestRobinFiles(t *testing.T) {
	Convey("Given scheduled flights", t, func() {
		dir := filepath.Join(t.TempDir(), "Matchups")

		paths, err := export.RobinFiles(dir, export.TSV, fixture())
		So(err, ShouldBeNil)

		Convey("Then one file per flight is written", func() {
			So(paths, ShouldResemble, []string{
				filepath.Join(dir, "BB-Flight1.tsv"),
				filepath.Join(dir, "BB-Flight2.tsv"),
			})

			data, err := os.ReadFile(paths[1])
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "Bale\tRound 1\n1\tE vs F\n")
		})
	})

	Convey("Given a division name containing a path separator", t, func() {
		dir := t.TempDir()
		pairs, _ := schedule.Generate([]string{"A", "B"}, "berger")
		divisions := []matchup.DivisionSchedule{{
			Division: "U18/Women",
			Flights: []matchup.FlightSchedule{
				{Division: "U18/Women", Flight: 1, Rounds: pairs},
			},
		}}

		paths, err := export.RobinFiles(dir, export.TSV, divisions)

		Convey("Then the flight file stays inside the output directory", func() {
			So(err, ShouldBeNil)
			So(paths, ShouldResemble, []string{filepath.Join(dir, "U18_Women-Flight1.tsv")})
			So(export.TeamFileName(`U18\Men`, export.CSV), ShouldEqual, "U18_Men-Teams.csv")
		})
	})

	Convey("Given flights with different round counts", t, func() {
		header, rows := export.CombinedTable(fixture())

		Convey("Then the combined table is as wide as the longest flight", func() {
			So(header, ShouldResemble, []string{"Bale", "Round 1", "Round 2", "Round 3", "Division", "Flight Number"})
			So(rows, ShouldHaveLength, 3)
			So(rows[2], ShouldResemble, []string{"1", "E vs F", "", "", "BB", "2"})
		})
	})
}

func TestTeams(t *testing.T) {
	Convey("Given formed teams", t, func() {
		ranked := []scores.Competitor{
			{Name: "C", Division: "BB", Score: 10},
			{Name: "B", Division: "BB", Score: 20},
			{Name: "A", Division: "BB", Score: 30},
		}
		formed, err := teams.Form(ranked, 2, nil)
		So(err, ShouldBeNil)
		divisions := []matchup.DivisionTeams{{Division: "BB", Teams: formed}}

		Convey("Then the team table has a row per team in seed order", func() {
			header, rows := export.TeamTable(divisions)
			So(header, ShouldResemble, []string{"Division", "Seed", "Aggregate", "Members"})
			So(rows, ShouldResemble, [][]string{
				{"BB", "1", "30", "A [1] / Gunrock [-inf]"},
				{"BB", "2", "30", "B [2] / C [3]"},
			})
		})

		Convey("And the team lists embed seeds and aggregates", func() {
			lists := export.TeamLists(divisions)
			So(lists["BB"], ShouldResemble, []string{
				"Seed 1 (30): A [1] / Gunrock [-inf]",
				"Seed 2 (30): B [2] / C [3]",
			})
		})

		Convey("And team files are named after the division", func() {
			dir := t.TempDir()
			paths, err := export.TeamFiles(dir, export.CSV, divisions)
			So(err, ShouldBeNil)
			So(paths, ShouldResemble, []string{filepath.Join(dir, "BB-Teams.csv")})
		})

		Convey("And separators in the division name do not create directories", func() {
			dir := t.TempDir()
			divisions[0].Division = "U18/Women"
			paths, err := export.TeamFiles(dir, export.CSV, divisions)
			So(err, ShouldBeNil)
			So(paths, ShouldResemble, []string{filepath.Join(dir, "U18_Women-Teams.csv")})
		})
	})
}
