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

package schedule

import "fmt"

// Berger schedules a flight with the Berger table (circle) method.
//
// The last competitor is kept fixed while the others rotate: the table is
// an (n-1)x(n-1) matrix where row i is the sequence 1..n-1 shifted left by
// i+1 places. Entry (i, j) puts the pairing (i+1, j+1) into round
// matrix[i][j], and the diagonal entry (i, i) puts (i+1, n) there instead.
// The matrix is symmetric, so only its upper triangle is read.
type Berger struct{}

// BergerMatrix returns the round number table used by the Berger method
// for n competitors.
func BergerMatrix(n int) [][]int {
	size := n - 1

	matrix := make([][]int, size)
	for i := range matrix {
		matrix[i] = make([]int, size)
		for j := range matrix[i] {
			matrix[i][j] = (i+j+1)%size + 1
		}
	}

	return matrix
}

func (Berger) Schedule(n int) (Schedule, error) {
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("berger: %w: got %d", ErrOddCompetitors, n)
	}

	matrix := BergerMatrix(n)

	schedule := make(Schedule, n-1)
	for i := 0; i < n-1; i++ {
		for j := i; j < n-1; j++ {
			pairing := Pairing{Home: i + 1, Away: j + 1}
			if i == j {
				pairing.Away = n
			}

			round := matrix[i][j] - 1
			schedule[round] = append(schedule[round], pairing)
		}
	}

	return schedule, nil
}
