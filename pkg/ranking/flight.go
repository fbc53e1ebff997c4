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

package ranking

import "laptudirm.com/x/quiver/pkg/scores"

// Flight is a contiguous slice of a ranked division.
type Flight struct {
	Number      int // 1-based
	Competitors []scores.Competitor
}

// SplitBySize cuts a ranked division into flights of the given size. The
// last flight holds whatever is left, so 10 competitors in flights of 4
// give flights of 4, 4 and 2.
func SplitBySize(section []scores.Competitor, size int) []Flight {
	if size < 1 {
		size = 1
	}

	var flights []Flight
	for start := 0; start < len(section); start += size {
		end := min(start+size, len(section))
		flights = append(flights, Flight{
			Number:      len(flights) + 1,
			Competitors: section[start:end:end],
		})
	}

	return flights
}

// SplitInto cuts a ranked division into flights sized len/count. Integer
// division means the count is a target: leftover competitors end up in an
// extra, smaller flight at the bottom.
func SplitInto(section []scores.Competitor, count int) []Flight {
	if count < 1 {
		count = 1
	}

	return SplitBySize(section, len(section)/count)
}
