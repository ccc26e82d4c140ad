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

package coverage

import (
	"fmt"

	"github.com/jetsetilly/dwlocstat/internal/category"
	"github.com/jetsetilly/dwlocstat/internal/outcome"
	"github.com/jetsetilly/dwlocstat/internal/tally"
)

// Classify folds a Result into the DIE's final category bitmask, applying
// the post-coverage classification rules: no_coverage tagging,
// mutable/immutable assertion, and the ignore-mask intersection check that
// is the last word on whether a DIE survives into the tally.
func Classify(r Result, bitmask category.Set, wantMutability bool, ignore category.Set) (category.Set, outcome.Outcome) {
	if r.SingleAddr {
		bitmask = bitmask.Set(category.SingleAddr)
	}
	if r.ImplicitPointer {
		bitmask = bitmask.Set(category.ImplicitPointer)
	}

	if r.Coverage == tally.SharpZero {
		if ignore.Has(category.NoCoverage) {
			return bitmask, outcome.Die(nil)
		}
		bitmask = bitmask.Set(category.NoCoverage)
	} else if wantMutability {
		if !r.Mutable && !r.Immutable {
			return bitmask, outcome.Die(fmt.Errorf("coverage analyzer produced neither mutable nor immutable for a covered DIE"))
		}
		if r.Mutable {
			if ignore.Has(category.Mutable) {
				return bitmask, outcome.Die(nil)
			}
			bitmask = bitmask.Set(category.Mutable)
		}
		if r.Immutable {
			if ignore.Has(category.Immutable) {
				return bitmask, outcome.Die(nil)
			}
			bitmask = bitmask.Set(category.Immutable)
		}
	}

	if bitmask.Intersects(ignore) {
		return bitmask, outcome.Die(nil)
	}
	return bitmask, outcome.Ok()
}
