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

// Package ranking sorts the competitors of every division by qualifying
// score and splits them into flights.
package ranking

import (
	"sort"

	"laptudirm.com/x/quiver/pkg/internal/util"
	"laptudirm.com/x/quiver/pkg/scores"
)

// Order is the direction a division is sorted in. Round robin flighting
// and team formation use opposite directions, so every caller has to name
// the one it wants.
type Order int

const (
	// Descending puts the best score first. Used for round robin flights.
	Descending Order = iota

	// Ascending puts the worst score first. Used for team formation.
	Ascending
)

// Rank groups the table by division and sorts every division by score in
// the given order. The returned competitors carry their qualifying total
// in Score and no raw round scores. Placeholders always sort last and
// equal scores are broken by natural name order.
func Rank(table *scores.Table, order Order) map[string][]scores.Competitor {
	divisions := make(map[string][]scores.Competitor)
	for _, competitor := range table.Competitors {
		if !table.Precomputed {
			competitor.Score = competitor.Total()
		}
		competitor.Rounds = nil

		divisions[competitor.Division] = append(divisions[competitor.Division], competitor)
	}

	for _, section := range divisions {
		Sort(section, order)
	}

	return divisions
}

// Sort sorts a single division in place.
func Sort(section []scores.Competitor, order Order) {
	sort.SliceStable(section, func(i, j int) bool {
		a, b := section[i], section[j]

		if a.IsPlaceholder() != b.IsPlaceholder() {
			return b.IsPlaceholder()
		}

		if a.Score != b.Score {
			if order == Ascending {
				return a.Score < b.Score
			}

			return a.Score > b.Score
		}

		return util.NaturalLess(a.Name, b.Name)
	})
}
