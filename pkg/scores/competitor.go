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

// Package scores loads qualifying score tables and models the competitors
// found in them.
package scores

import (
	"fmt"
	"math"
)

// RoundCount is the number of per-round score columns (R1..R10) a score
// table carries when it has no precomputed QualScore column.
const RoundCount = 10

// Kind tells a real competitor apart from a synthetic one that only exists
// to make pairing arithmetic work.
type Kind int

const (
	Real Kind = iota
	Placeholder
)

func (kind Kind) String() string {
	switch kind {
	case Real:
		return "real"
	case Placeholder:
		return "placeholder"
	default:
		return "?"
	}
}

// Competitor is a single archer of a division.
type Competitor struct {
	Name     string
	Division string

	// Score is the qualifying total. It is either read from the QualScore
	// column or derived from Rounds by Total.
	Score float64

	// Rounds holds the raw per-round scores, nil after ranking or when the
	// table had a precomputed total. A nil entry is a missing round.
	Rounds []*float64

	Kind Kind
}

// Bye returns the placeholder added to odd round robin flights. It always
// ranks below every real competitor.
func Bye(division string) Competitor {
	return Competitor{
		Name:     "BYE",
		Division: division,
		Score:    math.Inf(-1),
		Kind:     Placeholder,
	}
}

// Gunrock returns the placeholder added to odd divisions when forming teams
// of two. It contributes nothing to its team's aggregate.
func Gunrock(division string) Competitor {
	return Competitor{
		Name:     "Gunrock",
		Division: division,
		Score:    0,
		Kind:     Placeholder,
	}
}

// IsPlaceholder reports whether the competitor is synthetic.
func (c Competitor) IsPlaceholder() bool {
	return c.Kind == Placeholder
}

// Total sums the per-round scores, treating missing rounds as zero.
func (c Competitor) Total() float64 {
	var total float64
	for _, round := range c.Rounds {
		if round != nil {
			total += *round
		}
	}

	return total
}

func (c Competitor) String() string {
	return fmt.Sprintf("%s (%s, %g)", c.Name, c.Division, c.Score)
}
