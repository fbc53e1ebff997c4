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

// Package schedule generates round robin schedules for a flight of
// competitors.
package schedule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOddCompetitors   = errors.New("competitor count must be even")
	ErrUnknownAlgorithm = errors.New("unknown round robin algorithm")
)

// Algorithms lists the accepted algorithm names.
var Algorithms = []string{"berger"}

// New returns the scheduler implementing the named algorithm. An empty name
// selects the default Berger table.
func New(name string) (Scheduler, error) {
	switch strings.ToLower(name) {
	case "berger", "":
		return Berger{}, nil
	default:
		return nil, fmt.Errorf("new scheduler: %w %q", ErrUnknownAlgorithm, name)
	}
}

type Scheduler interface {
	// Schedule returns the rounds for n competitors, who are identified by
	// their 1-based position. n must be even.
	Schedule(n int) (Schedule, error)
}

// Pairing is a single match between the competitors at two 1-based
// positions of a flight.
type Pairing struct {
	Home, Away int
}

// Schedule is an ordered list of rounds, each one an ordered list of the
// pairings shot concurrently in that round.
type Schedule [][]Pairing

// Match is a Pairing resolved to competitor names.
type Match struct {
	Home, Away string
}

func (match Match) String() string {
	return match.Home + " vs " + match.Away
}

// Rounds is a Schedule resolved to competitor names.
type Rounds [][]Match

// Generate schedules the given names, which are assumed to be sorted by
// score, using the named algorithm. An odd number of names is rejected: the
// caller is expected to have added a BYE.
func Generate(names []string, algorithm string) (Rounds, error) {
	scheduler, err := New(algorithm)
	if err != nil {
		return nil, err
	}

	schedule, err := scheduler.Schedule(len(names))
	if err != nil {
		return nil, err
	}

	return schedule.Resolve(names), nil
}

// Resolve maps the positions in the schedule to the given names.
func (schedule Schedule) Resolve(names []string) Rounds {
	rounds := make(Rounds, len(schedule))
	for i, pairings := range schedule {
		rounds[i] = make([]Match, len(pairings))
		for j, pairing := range pairings {
			rounds[i][j] = Match{
				Home: names[pairing.Home-1],
				Away: names[pairing.Away-1],
			}
		}
	}

	return rounds
}

// Bales returns the number of concurrent match slots needed to shoot the
// widest round.
func (rounds Rounds) Bales() int {
	bales := 0
	for _, round := range rounds {
		bales = max(bales, len(round))
	}

	return bales
}

// Table lays the rounds out with one row per bale and one column per round.
// Rounds with fewer matches than the widest one get empty cells.
func (rounds Rounds) Table() (header []string, rows [][]string) {
	header = make([]string, len(rounds)+1)
	header[0] = "Bale"
	for i := range rounds {
		header[i+1] = fmt.Sprintf("Round %d", i+1)
	}

	rows = make([][]string, rounds.Bales())
	for bale := range rows {
		row := make([]string, len(rounds)+1)
		row[0] = fmt.Sprint(bale + 1)
		for i, round := range rounds {
			if bale < len(round) {
				row[i+1] = round[bale].String()
			}
		}

		rows[bale] = row
	}

	return header, rows
}
