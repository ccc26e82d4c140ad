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

// Attr returns the raw attribute field on e, or nil if e doesn't carry it
// directly (no following of specification/abstract_origin).
func Attr(e *dwarf.Entry, a dwarf.Attr) *dwarf.Field {
	return e.AttrField(a)
}

// AttrIntegrated is the analyser's "integrated" attribute lookup: if e
// doesn't carry attribute a directly, it follows DW_AT_abstract_origin and
// then DW_AT_specification to the referenced DIE and looks there instead,
// recursively. This mirrors how a DWARF consumer assembles the full
// picture of an inlined or out-of-line-defined entity from its declaration
// and its instantiation.
func (c *Context) AttrIntegrated(e *dwarf.Entry, a dwarf.Attr) *dwarf.Field {
	return c.attrIntegrated(e, a, 0)
}

func (c *Context) attrIntegrated(e *dwarf.Entry, a dwarf.Attr, depth int) *dwarf.Field {
	if f := e.AttrField(a); f != nil {
		return f
	}
	if depth > 16 || e == nil {
		return nil
	}

	for _, ref := range [...]dwarf.Attr{dwarf.AttrAbstractOrigin, dwarf.AttrSpecification} {
		rf := e.AttrField(ref)
		if rf == nil {
			continue
		}
		off, ok := rf.Val.(dwarf.Offset)
		if !ok {
			continue
		}
		target, err := c.entryAt(off)
		if err != nil {
			continue
		}
		if f := c.attrIntegrated(target, a, depth+1); f != nil {
			return f
		}
	}
	return nil
}

// EntryByOffset resolves an absolute .debug_info offset to its DIE, as used
// to follow DW_OP_{GNU_,}implicit_pointer operands.
func (c *Context) EntryByOffset(off dwarf.Offset) (*dwarf.Entry, error) {
	return c.entryAt(off)
}

// FormFlag reads a flag-class attribute field (DW_AT_declaration,
// DW_AT_artificial, DW_AT_external, ...). Missing or malformed fields
// report false.
func FormFlag(f *dwarf.Field) bool {
	if f == nil {
		return false
	}
	b, _ := f.Val.(bool)
	return b
}

// FormString reads a string-class attribute field (DW_AT_name, ...).
func FormString(f *dwarf.Field) string {
	if f == nil {
		return ""
	}
	s, _ := f.Val.(string)
	return s
}

// FormUint reads an unsigned-integer-class attribute field
// (DW_AT_inline, DW_AT_const_value when encoded as udata, ...).
func FormUint(f *dwarf.Field) (uint64, bool) {
	if f == nil {
		return 0, false
	}
	switch v := f.Val.(type) {
	case int64:
		return uint64(v), true
	case uint64:
		return v, true
	}
	return 0, false
}
