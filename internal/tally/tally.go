// This file is part of dwlocstat.
//
// dwlocstat is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dwlocstat is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dwlocstat.  If not, see <https://www.gnu.org/licenses/>.

// Package tally implements the Coverage value -- a tagged integer
// (SharpZero, or 0..100) -- and the per-file tally: a histogram over it.
package tally

// Coverage is SharpZero or an integer in [0, 100]. SharpZero is
// represented as -1, matching the source tool's cov_00 sentinel, so that
// it sorts before every real percentage (SharpZero < 0 <= ... <= 100).
type Coverage int

// SharpZero means "no byte covered, or no location at all" -- distinct
// from a real 0% that results from truncating integer division of a
// tiny-but-nonzero covered byte count.
const SharpZero Coverage = -1

// FromRatio computes floor(100*covered/length), returning SharpZero when
// length or covered is zero.
func FromRatio(covered, length uint64) Coverage {
	if length == 0 || covered == 0 {
		return SharpZero
	}
	return Coverage(100 * covered / length)
}

// Tally maps a Coverage value to the number of DIEs that landed on it,
// plus a running total.
type Tally struct {
	counts map[Coverage]uint64
	Total  uint64
}

// New returns an empty Tally.
func New() *Tally {
	return &Tally{counts: make(map[Coverage]uint64)}
}

// Add records one more DIE at coverage value v.
func (t *Tally) Add(v Coverage) {
	t.counts[v]++
	t.Total++
}

// Count returns how many DIEs landed on coverage value v.
func (t *Tally) Count(v Coverage) uint64 {
	return t.counts[v]
}
