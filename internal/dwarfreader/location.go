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

// LocationKind distinguishes the two shapes a DW_AT_location field can
// take, for the coverage analyzer's location dispatch.
type LocationKind int

const (
	// LocationExpr is a single, non-list operator sequence: the field's
	// value is the raw expression bytes.
	LocationExpr LocationKind = iota
	// LocationList is a pointer into .debug_loc/.debug_loclists.
	LocationList
)

// ClassifyLocation reports how to interpret a resolved DW_AT_location
// field's value: as a raw expression (ExprLoc/Block forms) or as an
// offset into a location-list section (LocListPtr forms in DWARF <= 4,
// sec_offset/loclistx forms in DWARF 5).
func ClassifyLocation(f *dwarf.Field) LocationKind {
	switch f.Val.(type) {
	case int64, uint64:
		return LocationList
	default:
		return LocationExpr
	}
}

// NonListOps decodes a location attribute field known (via ClassifyLocation)
// to hold a raw expression.
func (c *Context) NonListOps(f *dwarf.Field) ([]Op, error) {
	raw, ok := f.Val.([]byte)
	if !ok {
		return nil, nil
	}
	return DecodeExpr(raw, c.addrSize)
}

// LocationListOffset extracts the section offset a LocationList-kind field
// points to.
func LocationListOffset(f *dwarf.Field) uint64 {
	switch v := f.Val.(type) {
	case int64:
		return uint64(v)
	case uint64:
		return v
	}
	return 0
}

// ImplicitPointerTarget resolves the DIE referenced by a
// DW_OP_{GNU_,}implicit_pointer operator and returns its (integrated)
// location attribute field.
// Returns nil, nil if the referenced DIE has no location of its own.
func (c *Context) ImplicitPointerTarget(op Op) (*dwarf.Field, error) {
	target, err := c.entryAt(dwarf.Offset(op.RefOffset))
	if err != nil {
		return nil, err
	}
	return c.AttrIntegrated(target, dwarf.AttrLocation), nil
}
