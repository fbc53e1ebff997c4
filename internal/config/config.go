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

// Package config holds quiver's settings and loads them from defaults, a
// YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"slices"

	"laptudirm.com/x/quiver/pkg/export"
	"laptudirm.com/x/quiver/pkg/schedule"
	"laptudirm.com/x/quiver/pkg/teams"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Path of the score table to read.
	ScoreFile string `koanf:"score_file"`

	// Drop rows with missing scores instead of only reporting them.
	RemoveErrors bool `koanf:"remove_errors"`

	// Round robin settings. A non-zero FlightSize takes precedence over
	// the Flights count.
	FlightSize int    `koanf:"flight_size"`
	Flights    int    `koanf:"flights"`
	Algorithm  string `koanf:"algorithm"`

	// Elimination settings.
	TeamSize int   `koanf:"team_size"`
	Seed     int64 `koanf:"seed"`

	// Output settings.
	Format   string `koanf:"format"`
	Output   string `koanf:"output"`
	Combined bool   `koanf:"combined"`

	// Number of divisions processed at once, 0 means one per CPU.
	Concurrency int `koanf:"concurrency"`
}

// New returns the default configuration: two flights per division, teams
// of two and tab separated files under ./Matchups.
func New() *Config {
	return &Config{
		ScoreFile: "Data/scores.tsv",
		Flights:   2,
		Algorithm: "berger",
		TeamSize:  2,
		Seed:      1,
		Format:    string(export.TSV),
		Output:    "Matchups",
	}
}

// Validate rejects settings no command could run with. Every error names
// the offending setting.
func (config *Config) Validate() error {
	if config.ScoreFile == "" {
		return fmt.Errorf("%w: score_file must not be empty", ErrInvalidConfig)
	}

	if config.FlightSize < 0 {
		return fmt.Errorf("%w: flight_size must not be negative, got %d", ErrInvalidConfig, config.FlightSize)
	}

	if config.FlightSize == 0 && config.Flights < 1 {
		return fmt.Errorf("%w: flights must be positive, got %d", ErrInvalidConfig, config.Flights)
	}

	if _, err := schedule.New(config.Algorithm); err != nil {
		return fmt.Errorf("%w: algorithm: %w", ErrInvalidConfig, err)
	}

	if !slices.Contains(teams.Sizes, config.TeamSize) {
		return fmt.Errorf("%w: team_size must be 2 or 3, got %d", ErrInvalidConfig, config.TeamSize)
	}

	if _, err := export.ParseFormat(config.Format); err != nil {
		return fmt.Errorf("%w: format: %w", ErrInvalidConfig, err)
	}

	if config.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative, got %d", ErrInvalidConfig, config.Concurrency)
	}

	return nil
}
