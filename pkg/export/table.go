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

// Package export writes schedules and team lists as delimited files, YAML
// documents or terminal tables.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown output format")

type Format string

const (
	TSV  Format = "tsv"
	CSV  Format = "csv"
	YAML Format = "yaml"
	Text Format = "text"
)

// Formats lists the accepted output formats.
var Formats = []Format{TSV, CSV, YAML, Text}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(name))
	for _, known := range Formats {
		if format == known {
			return format, nil
		}
	}

	return "", fmt.Errorf("%w %q", ErrUnknownFormat, name)
}

// Extension returns the file extension used for the format.
func (format Format) Extension() string {
	switch format {
	case YAML:
		return ".yaml"
	case Text:
		return ".txt"
	default:
		return "." + string(format)
	}
}

// WriteTable writes a header and its rows in the given format.
func WriteTable(w io.Writer, format Format, header []string, rows [][]string) error {
	switch format {
	case TSV, CSV:
		writer := csv.NewWriter(w)
		if format == TSV {
			writer.Comma = '\t'
		}

		if err := writer.Write(header); err != nil {
			return err
		}

		if err := writer.WriteAll(rows); err != nil {
			return err
		}

		return writer.Error()

	case YAML:
		document := yaml.Node{Kind: yaml.SequenceNode}
		for _, row := range rows {
			record := &yaml.Node{Kind: yaml.MappingNode}
			for i, column := range header {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}

				record.Content = append(record.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: column},
					&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: cell},
				)
			}

			document.Content = append(document.Content, record)
		}

		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(&document); err != nil {
			return err
		}

		return encoder.Close()

	case Text:
		return writeText(w, header, rows)

	default:
		return fmt.Errorf("write table: %w %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	for i, column := range header {
		widths[i] = utf8.RuneCountInString(column)
	}

	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
	}

	rule := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, width := range widths {
			parts[i] = strings.Repeat("═", width+2)
		}

		return left + strings.Join(parts, mid) + right + "\n"
	}

	line := func(cells []string) string {
		var sb strings.Builder
		sb.WriteString("║")
		for i, width := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}

			fmt.Fprintf(&sb, " %s%s ║", cell, strings.Repeat(" ", width-utf8.RuneCountInString(cell)))
		}

		sb.WriteString("\n")
		return sb.String()
	}

	var sb strings.Builder
	sb.WriteString(rule("╔", "╦", "╗"))
	sb.WriteString(line(header))
	sb.WriteString(rule("╠", "╬", "╣"))
	for _, row := range rows {
		sb.WriteString(line(row))
	}
	sb.WriteString(rule("╚", "╩", "╝"))

	_, err := io.WriteString(w, sb.String())
	return err
}
