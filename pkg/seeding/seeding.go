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

// Package seeding computes the orders in which ranked competitors are
// drawn into teams so that strong and weak competitors are spread evenly.
//
// Every function here works on a list ranked worst first: index 0 is the
// lowest score and index n-1 the highest, so the individual seed of index
// i is n-i.
package seeding

// Shuffler randomizes the order of n elements. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NoShuffle is a Shuffler which leaves the order untouched.
type NoShuffle struct{}

func (NoShuffle) Shuffle(int, func(i, j int)) {}

// Order is a traversal over the indices of a ranked list.
type Order struct {
	Indices []int // indices into the ranked list, in draw order
	Seeds   []int // individual seed of each drawn index, 1 is the best
}

func newOrder(n int, indices []int) Order {
	seeds := make([]int, len(indices))
	for i, index := range indices {
		seeds[i] = n - index
	}

	return Order{Indices: indices, Seeds: seeds}
}

// TwoWay visits the ranked list from both ends inwards: best, worst, second
// best, second worst and so on. Every consecutive pair of the traversal
// holds one competitor from the top half and one from the bottom half.
func TwoWay(n int) Order {
	indices := make([]int, 0, n)
	for top, bottom := n-1, 0; top >= bottom; top, bottom = top-1, bottom+1 {
		indices = append(indices, top)
		if top != bottom {
			indices = append(indices, bottom)
		}
	}

	return newOrder(n, indices)
}

// ThreeWay splits the ranked list into three score bands by floor division
// and takes one competitor from the low, high and mid band in turn. The low
// band is visited worst first, the high band best first and the mid band in
// an order decided by the shuffler. Once a band runs dry the remaining
// bands carry on in the same rotation.
func ThreeWay(n int, shuffler Shuffler) Order {
	lowEnd, midEnd := n/3, 2*n/3

	low := make([]int, 0, lowEnd)
	for i := 0; i < lowEnd; i++ {
		low = append(low, i)
	}

	mid := make([]int, 0, midEnd-lowEnd)
	for i := lowEnd; i < midEnd; i++ {
		mid = append(mid, i)
	}
	if shuffler != nil {
		shuffler.Shuffle(len(mid), func(i, j int) {
			mid[i], mid[j] = mid[j], mid[i]
		})
	}

	high := make([]int, 0, n-midEnd)
	for i := n - 1; i >= midEnd; i-- {
		high = append(high, i)
	}

	indices := make([]int, 0, n)
	for step := 0; len(indices) < n; step++ {
		for _, band := range [][]int{low, high, mid} {
			if step < len(band) {
				indices = append(indices, band[step])
			}
		}
	}

	return newOrder(n, indices)
}
