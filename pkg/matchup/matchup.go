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

// Package matchup runs round robin scheduling and team formation over
// every division of a score table.
package matchup

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"laptudirm.com/x/quiver/pkg/ranking"
	"laptudirm.com/x/quiver/pkg/schedule"
	"laptudirm.com/x/quiver/pkg/scores"
	"laptudirm.com/x/quiver/pkg/teams"
)

type RobinOptions struct {
	// FlightSize is the number of competitors per flight. When it is zero
	// the size is derived from Flights instead.
	FlightSize int

	// Flights is the target number of flights per division.
	Flights int

	Algorithm string

	// Concurrency bounds the number of divisions processed at once. It
	// defaults to the number of CPUs.
	Concurrency int
}

// FlightSchedule is the round robin schedule of a single flight.
type FlightSchedule struct {
	Division string
	Flight   int

	// Competitors of the flight best first, including the BYE if one had
	// to be added.
	Competitors []scores.Competitor

	Rounds schedule.Rounds
}

// HasBye reports whether a BYE was added to the flight.
func (flight FlightSchedule) HasBye() bool {
	last := len(flight.Competitors) - 1
	return last >= 0 && flight.Competitors[last].IsPlaceholder()
}

type DivisionSchedule struct {
	Division string
	Flights  []FlightSchedule
}

// RoundRobin ranks every division best first, splits it into flights and
// schedules each flight. Divisions are returned in sorted order.
func RoundRobin(ctx context.Context, table *scores.Table, opts RobinOptions) ([]DivisionSchedule, error) {
	scheduler, err := schedule.New(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	ranked := ranking.Rank(table, ranking.Descending)
	divisions := table.Divisions()
	results := make([]DivisionSchedule, len(divisions))

	err = forEach(ctx, divisions, opts.Concurrency, func(i int, division string) error {
		var flights []ranking.Flight
		if opts.FlightSize > 0 {
			flights = ranking.SplitBySize(ranked[division], opts.FlightSize)
		} else {
			flights = ranking.SplitInto(ranked[division], opts.Flights)
		}

		results[i].Division = division
		for _, flight := range flights {
			scheduled, err := scheduleFlight(scheduler, division, flight)
			if err != nil {
				return err
			}

			results[i].Flights = append(results[i].Flights, scheduled)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

func scheduleFlight(scheduler schedule.Scheduler, division string, flight ranking.Flight) (FlightSchedule, error) {
	competitors := flight.Competitors
	if len(competitors)%2 != 0 {
		padded := make([]scores.Competitor, len(competitors), len(competitors)+1)
		copy(padded, competitors)
		competitors = append(padded, scores.Bye(division))
	}

	logrus.WithFields(logrus.Fields{
		"division": division,
		"flight":   flight.Number,
	}).Debugf("scheduling %d competitors", len(competitors))

	rounds, err := scheduler.Schedule(len(competitors))
	if err != nil {
		return FlightSchedule{}, fmt.Errorf("division %s flight %d: %w", division, flight.Number, err)
	}

	names := make([]string, len(competitors))
	for i, competitor := range competitors {
		names[i] = competitor.Name
	}

	return FlightSchedule{
		Division:    division,
		Flight:      flight.Number,
		Competitors: competitors,
		Rounds:      rounds.Resolve(names),
	}, nil
}

type TeamOptions struct {
	TeamSize int

	// Seed seeds the mid band shuffle of teams of three. Division i, in
	// sorted order, is shuffled with a source seeded with Seed+i.
	Seed int64

	Concurrency int
}

type DivisionTeams struct {
	Division string
	Teams    []teams.Team
}

// Eliminations ranks every division worst first and forms seeded teams out
// of it. Divisions are returned in sorted order.
func Eliminations(ctx context.Context, table *scores.Table, opts TeamOptions) ([]DivisionTeams, error) {
	ranked := ranking.Rank(table, ranking.Ascending)
	divisions := table.Divisions()
	results := make([]DivisionTeams, len(divisions))

	err := forEach(ctx, divisions, opts.Concurrency, func(i int, division string) error {
		source := rand.New(rand.NewSource(opts.Seed + int64(i)))

		logrus.WithField("division", division).Debugf(
			"forming teams of %d from %d competitors", opts.TeamSize, len(ranked[division]),
		)

		formed, err := teams.Form(ranked[division], opts.TeamSize, source)
		if err != nil {
			return fmt.Errorf("division %s: %w", division, err)
		}

		results[i] = DivisionTeams{Division: division, Teams: formed}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// forEach runs fn for every division on an errgroup. The first error
// cancels the divisions which have not started yet.
func forEach(ctx context.Context, divisions []string, concurrency int, fn func(int, string) error) error {
	if concurrency < 1 {
		concurrency = runtime.NumCPU()
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(concurrency)

	for i, division := range divisions {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			return fn(i, division)
		})
	}

	return group.Wait()
}
