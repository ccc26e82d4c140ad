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

package dwarfreader

import "debug/dwarf"

// Range is a half-open [Low, High) address range.
type Range struct {
	Low, High uint64
}

// Length returns the number of addresses the range covers.
func (r Range) Length() uint64 {
	if r.High <= r.Low {
		return 0
	}
	return r.High - r.Low
}

// Ranges returns the PC ranges directly attached to e, via DW_AT_ranges or
// DW_AT_low_pc/DW_AT_high_pc. Returns nil if e carries none -- the caller
// (internal/coverage) is responsible for walking up to the nearest
// ancestor that does.
func (c *Context) Ranges(e *dwarf.Entry) ([]Range, error) {
	raw, err := c.dwrf.Ranges(e)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]Range, len(raw))
	for i, r := range raw {
		out[i] = Range{Low: r[0], High: r[1]}
	}
	return out, nil
}
