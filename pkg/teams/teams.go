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

// Package teams forms balanced elimination teams out of a ranked division
// and seeds them by their combined qualifying score.
package teams

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"laptudirm.com/x/quiver/pkg/scores"
	"laptudirm.com/x/quiver/pkg/seeding"
)

var (
	ErrTeamSize          = errors.New("unsupported team size")
	ErrTooFewCompetitors = errors.New("too few competitors")
)

// Sizes lists the supported team sizes.
var Sizes = []int{2, 3}

// Member is a competitor drawn into a team along with its individual seed.
type Member struct {
	scores.Competitor

	// Seed is the competitor's rank in its division, 1 being the best.
	// It is zero for placeholders.
	Seed int
}

func (member Member) String() string {
	if member.IsPlaceholder() {
		return member.Name + " [-inf]"
	}

	return fmt.Sprintf("%s [%d]", member.Name, member.Seed)
}

// Team is a finished team. Teams are never modified after Form returns.
type Team struct {
	Members   []Member
	Aggregate float64 // sum of the members' scores, placeholders add nothing
	Seed      int     // rank among the division's teams by Aggregate
}

func (team Team) String() string {
	members := make([]string, len(team.Members))
	for i, member := range team.Members {
		members[i] = member.String()
	}

	return fmt.Sprintf("Seed %d (%g): %s", team.Seed, team.Aggregate, strings.Join(members, " / "))
}

// Form draws the competitors of a single division, ranked worst first,
// into teams of the given size and seeds them by aggregate score.
//
// Teams of two pair the best remaining competitor with the worst one; an
// odd division is padded with a Gunrock placeholder at the bottom. Teams of
// three take one competitor from each score band, with the mid band order
// decided by the shuffler. When the division does not divide by three the
// last four competitors drawn form two pairs, or the last two form one.
func Form(ranked []scores.Competitor, size int, shuffler seeding.Shuffler) ([]Team, error) {
	var (
		order  seeding.Order
		groups []int
	)

	switch size {
	case 2:
		if len(ranked) == 0 {
			return nil, fmt.Errorf("teams of 2: %w: got 0", ErrTooFewCompetitors)
		}

		if len(ranked)%2 != 0 {
			padded := make([]scores.Competitor, 0, len(ranked)+1)
			padded = append(padded, scores.Gunrock(ranked[0].Division))
			ranked = append(padded, ranked...)
		}

		order = seeding.TwoWay(len(ranked))
		groups = split(len(ranked), 2, 0)

	case 3:
		n := len(ranked)
		if n < 2 {
			return nil, fmt.Errorf("teams of 3: %w: got %d", ErrTooFewCompetitors, n)
		}

		order = seeding.ThreeWay(n, shuffler)
		switch n % 3 {
		case 0:
			groups = split(n, 3, 0)
		case 1:
			groups = split(n, 3, 2)
		case 2:
			groups = split(n, 3, 1)
		}

	default:
		return nil, fmt.Errorf("form teams: %w %d (want 2 or 3)", ErrTeamSize, size)
	}

	teams := make([]Team, 0, len(groups))
	drawn := 0
	for _, members := range groups {
		var team Team
		for i := drawn; i < drawn+members; i++ {
			competitor := ranked[order.Indices[i]]

			member := Member{Competitor: competitor, Seed: order.Seeds[i]}
			if competitor.IsPlaceholder() {
				member.Seed = 0
			} else {
				team.Aggregate += competitor.Score
			}

			team.Members = append(team.Members, member)
		}

		drawn += members
		teams = append(teams, team)
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].Aggregate > teams[j].Aggregate
	})

	for i := range teams {
		teams[i].Seed = i + 1
	}

	return teams, nil
}

// split returns the sizes of the groups n drawn competitors are cut into:
// groups of size, with the last pairs groups of two instead.
func split(n, size, pairs int) []int {
	var groups []int
	for n -= 2 * pairs; n > 0; n -= size {
		groups = append(groups, size)
	}

	for ; pairs > 0; pairs-- {
		groups = append(groups, 2)
	}

	return groups
}
