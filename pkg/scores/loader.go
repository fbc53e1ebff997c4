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

package scores

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrMissingColumn = errors.New("missing column")
	ErrNoRows        = errors.New("no competitor rows")
	ErrDuplicateName = errors.New("duplicate competitor name")
)

const (
	NameColumn      = "Name"
	DivisionColumn  = "Division"
	QualScoreColumn = "QualScore"
)

// RoundColumn returns the header of the given 1-based round column.
func RoundColumn(round int) string {
	return "R" + strconv.Itoa(round)
}

type Options struct {
	// RemoveErrors drops every row that has an Issue instead of keeping it
	// with the missing rounds counted as zero. Rows without a name or a
	// division are dropped either way.
	RemoveErrors bool
}

// Issue is a data quality problem found on a single row of a score table.
type Issue struct {
	Line     int // 1-based line number in the source, header is line 1
	Name     string
	Division string

	Missing []string // columns that were empty or not numeric
}

func (issue Issue) String() string {
	return fmt.Sprintf(
		"line %d: %s (%s) is missing %s",
		issue.Line, issue.Name, issue.Division, strings.Join(issue.Missing, ", "),
	)
}

// Table is a loaded score table.
type Table struct {
	Competitors []Competitor

	// Precomputed is set when the source had a QualScore column, in which
	// case the round columns are never read.
	Precomputed bool

	Issues []Issue
}

// Divisions returns the sorted division names present in the table.
func (table *Table) Divisions() []string {
	seen := make(map[string]bool)
	var divisions []string
	for _, competitor := range table.Competitors {
		if !seen[competitor.Division] {
			seen[competitor.Division] = true
			divisions = append(divisions, competitor.Division)
		}
	}

	sort.Strings(divisions)
	return divisions
}

// Delimiter picks the field separator for a score file from its extension:
// .csv files are comma separated, everything else is tab separated.
func Delimiter(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ','
	}

	return '\t'
}

// Load reads the score table stored at the given path.
func Load(path string, opts Options) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	table, err := Read(file, Delimiter(path), opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return table, nil
}

// Read parses a delimited score table with a header row.
func Read(r io.Reader, delimiter rune, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true // names like John "JJ" Smith are left unquoted

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoRows
		}

		return nil, err
	}

	// spreadsheet exports often start with a byte order mark
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	columns := make(map[string]int, len(header))
	for i, column := range header {
		columns[strings.TrimSpace(column)] = i
	}

	for _, required := range []string{NameColumn, DivisionColumn} {
		if _, found := columns[required]; !found {
			return nil, fmt.Errorf("header: %w %q", ErrMissingColumn, required)
		}
	}

	var table Table
	_, table.Precomputed = columns[QualScoreColumn]
	if !table.Precomputed {
		for round := 1; round <= RoundCount; round++ {
			if _, found := columns[RoundColumn(round)]; !found {
				return nil, fmt.Errorf(
					"header: %w %q (or a %s column)",
					ErrMissingColumn, RoundColumn(round), QualScoreColumn,
				)
			}
		}
	}

	field := func(record []string, column string) string {
		i, found := columns[column]
		if !found || i >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[i])
	}

	type key struct{ division, name string }
	seen := make(map[key]int)

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		competitor := Competitor{
			Name:     field(record, NameColumn),
			Division: field(record, DivisionColumn),
			Kind:     Real,
		}

		// skip blank lines
		if competitor.Name == "" && competitor.Division == "" {
			continue
		}

		// rows are keyed by name and division, so one without either
		// can never be scheduled and is always dropped
		if competitor.Name == "" || competitor.Division == "" {
			var missing []string
			if competitor.Name == "" {
				missing = append(missing, NameColumn)
			}
			if competitor.Division == "" {
				missing = append(missing, DivisionColumn)
			}

			issue := Issue{
				Line:     line,
				Name:     competitor.Name,
				Division: competitor.Division,
				Missing:  missing,
			}
			table.Issues = append(table.Issues, issue)

			logrus.WithField("line", issue.Line).
				Warnf("row is missing %s, skipping it", strings.Join(missing, " and "))
			continue
		}

		id := key{competitor.Division, competitor.Name}
		if first, found := seen[id]; found {
			return nil, fmt.Errorf(
				"line %d: %w %q in division %q (first seen on line %d)",
				line, ErrDuplicateName, competitor.Name, competitor.Division, first,
			)
		}
		seen[id] = line

		var missing []string
		if table.Precomputed {
			score, ok := parseScore(field(record, QualScoreColumn))
			if !ok {
				missing = append(missing, QualScoreColumn)
			}
			competitor.Score = score
		} else {
			competitor.Rounds = make([]*float64, RoundCount)
			for round := 1; round <= RoundCount; round++ {
				score, ok := parseScore(field(record, RoundColumn(round)))
				if !ok {
					missing = append(missing, RoundColumn(round))
					continue
				}
				competitor.Rounds[round-1] = &score
			}
			competitor.Score = competitor.Total()
		}

		if len(missing) > 0 {
			issue := Issue{
				Line:     line,
				Name:     competitor.Name,
				Division: competitor.Division,
				Missing:  missing,
			}
			table.Issues = append(table.Issues, issue)

			logrus.WithFields(logrus.Fields{
				"line":     issue.Line,
				"division": issue.Division,
			}).Warnf("%s appears to be missing scores. You should check that.", issue.Name)

			if opts.RemoveErrors {
				logrus.Debugf("removing %s from %s", issue.Name, issue.Division)
				continue
			}
		}

		table.Competitors = append(table.Competitors, competitor)
	}

	if len(table.Competitors) == 0 {
		return nil, ErrNoRows
	}

	return &table, nil
}

func parseScore(value string) (float64, bool) {
	if value == "" {
		return 0, false
	}

	score, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}

	return score, true
}
