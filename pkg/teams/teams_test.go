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

package teams_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"laptudirm.com/x/quiver/pkg/scores"
	"laptudirm.com/x/quiver/pkg/seeding"
	"laptudirm.com/x/quiver/pkg/teams"
)

// ascending returns n archers ranked worst first with the given scores, or
// with scores 50, 52, 54... when none are given.
func ascending(n int, points ...float64) []scores.Competitor {
	ranked := make([]scores.Competitor, n)
	for i := range ranked {
		score := float64(50 + 2*i)
		if i < len(points) {
			score = points[i]
		}

		ranked[i] = scores.Competitor{
			Name:     fmt.Sprintf("Archer%d", n-i),
			Division: "BB",
			Score:    score,
		}
	}
	return ranked
}

func memberCount(formed []teams.Team) map[string]int {
	count := make(map[string]int)
	for _, team := range formed {
		for _, member := range team.Members {
			count[member.Name]++
		}
	}
	return count
}

func sizes(formed []teams.Team) []int {
	var list []int
	for _, team := range formed {
		list = append(list, len(team.Members))
	}
	return list
}

func TestFormPairs(t *testing.T) {
	Convey("Given 6 archers and teams of 2", t, func() {
		ranked := ascending(6)
		formed, err := teams.Form(ranked, 2, nil)
		So(err, ShouldBeNil)

		Convey("Then the best is paired with the worst and inwards", func() {
			So(formed, ShouldHaveLength, 3)
			for _, team := range formed {
				So(team.Members, ShouldHaveLength, 2)
				So(team.Members[0].Seed+team.Members[1].Seed, ShouldEqual, 7)
				So(team.Members[0].Seed, ShouldBeLessThan, team.Members[1].Seed)
			}
		})

		Convey("And the aggregates are the member score sums", func() {
			for _, team := range formed {
				So(team.Aggregate, ShouldEqual, team.Members[0].Score+team.Members[1].Score)
			}
		})

		Convey("And the seeds follow the aggregates", func() {
			for i, team := range formed {
				So(team.Seed, ShouldEqual, i+1)
				if i > 0 {
					So(team.Aggregate, ShouldBeLessThanOrEqualTo, formed[i-1].Aggregate)
				}
			}
		})
	})

	Convey("Given 5 archers and teams of 2", t, func() {
		ranked := ascending(5)
		formed, err := teams.Form(ranked, 2, nil)
		So(err, ShouldBeNil)

		Convey("Then exactly one Gunrock is added and 3 teams are formed", func() {
			So(formed, ShouldHaveLength, 3)

			placeholders := 0
			for _, team := range formed {
				for _, member := range team.Members {
					if member.IsPlaceholder() {
						placeholders++
						So(member.Name, ShouldEqual, "Gunrock")
						So(member.Seed, ShouldEqual, 0)
					}
				}
			}
			So(placeholders, ShouldEqual, 1)
		})

		Convey("And the Gunrock team is seeded last", func() {
			last := formed[len(formed)-1]
			So(last.Seed, ShouldEqual, 3)
			So(last.Members[1].IsPlaceholder(), ShouldBeTrue)
			So(last.Members[0].Seed, ShouldEqual, 1)
			So(last.Aggregate, ShouldEqual, 58)
		})

		Convey("And the input is left untouched", func() {
			So(ranked, ShouldHaveLength, 5)
			So(ranked[0].Name, ShouldEqual, "Archer5")
		})

		Convey("And the real archers keep seeds 1 to 5", func() {
			seen := make(map[int]bool)
			for _, team := range formed {
				for _, member := range team.Members {
					if !member.IsPlaceholder() {
						seen[member.Seed] = true
					}
				}
			}
			So(seen, ShouldResemble, map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true})
		})
	})

	Convey("A single archer is teamed with a Gunrock", t, func() {
		formed, err := teams.Form(ascending(1), 2, nil)
		So(err, ShouldBeNil)
		So(formed, ShouldHaveLength, 1)
		So(formed[0].String(), ShouldEqual, "Seed 1 (50): Archer1 [1] / Gunrock [-inf]")
	})
}

func TestFormTriplets(t *testing.T) {
	Convey("Given 9 archers and teams of 3", t, func() {
		formed, err := teams.Form(ascending(9), 3, seeding.NoShuffle{})
		So(err, ShouldBeNil)

		Convey("Then three triplets with one archer per band are formed", func() {
			So(sizes(formed), ShouldResemble, []int{3, 3, 3})
			So(memberCount(formed), ShouldHaveLength, 9)

			for _, team := range formed {
				top, bottom := 0, 0
				for _, member := range team.Members {
					if member.Seed <= 3 {
						top++
					}
					if member.Seed >= 7 {
						bottom++
					}
				}
				So(top, ShouldEqual, 1)
				So(bottom, ShouldEqual, 1)
			}
		})
	})

	Convey("Given 7 archers and teams of 3", t, func() {
		formed, err := teams.Form(ascending(7), 3, seeding.NoShuffle{})
		So(err, ShouldBeNil)

		Convey("Then one triplet and two pairs cover everyone once", func() {
			So(formed, ShouldHaveLength, 3)

			triplets, pairs := 0, 0
			for _, team := range formed {
				switch len(team.Members) {
				case 3:
					triplets++
				case 2:
					pairs++
				}
			}
			So(triplets, ShouldEqual, 1)
			So(pairs, ShouldEqual, 2)

			count := memberCount(formed)
			So(count, ShouldHaveLength, 7)
			for _, times := range count {
				So(times, ShouldEqual, 1)
			}
		})
	})

	Convey("Given 8 archers and teams of 3", t, func() {
		formed, err := teams.Form(ascending(8), 3, seeding.NoShuffle{})
		So(err, ShouldBeNil)

		Convey("Then two triplets and one pair are formed", func() {
			So(formed, ShouldHaveLength, 3)
			So(memberCount(formed), ShouldHaveLength, 8)

			pairs := 0
			for _, team := range formed {
				if len(team.Members) == 2 {
					pairs++
				}
			}
			So(pairs, ShouldEqual, 1)
		})
	})

	Convey("Given 4 archers and teams of 3", t, func() {
		formed, err := teams.Form(ascending(4), 3, seeding.NoShuffle{})
		So(err, ShouldBeNil)
		So(sizes(formed), ShouldResemble, []int{2, 2})
	})

	Convey("Given a seeded random source", t, func() {
		ranked := ascending(12)

		first, err := teams.Form(ranked, 3, rand.New(rand.NewSource(7)))
		So(err, ShouldBeNil)
		second, err := teams.Form(ranked, 3, rand.New(rand.NewSource(7)))
		So(err, ShouldBeNil)

		Convey("Then forming again gives identical teams", func() {
			So(second, ShouldResemble, first)
		})
	})
}

func TestFormErrors(t *testing.T) {
	Convey("Unsupported team sizes are rejected by value", t, func() {
		for _, size := range []int{0, 1, 4} {
			_, err := teams.Form(ascending(8), size, nil)
			So(errors.Is(err, teams.ErrTeamSize), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, fmt.Sprint(size))
		}
	})

	Convey("Divisions too small to form a team are rejected", t, func() {
		_, err := teams.Form(ascending(1), 3, nil)
		So(errors.Is(err, teams.ErrTooFewCompetitors), ShouldBeTrue)

		_, err = teams.Form(nil, 2, nil)
		So(errors.Is(err, teams.ErrTooFewCompetitors), ShouldBeTrue)
	})
}
