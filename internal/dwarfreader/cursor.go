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

// CUCursor walks the top-level compile units of an object, skipping the
// children of each.
type CUCursor struct {
	r   *dwarf.Reader
	cur *dwarf.Entry
	err error
}

// CUs returns a cursor positioned before the first compile unit.
func (c *Context) CUs() *CUCursor {
	return &CUCursor{r: c.dwrf.Reader()}
}

// Advance moves to the next compile unit. Returns false once there are no
// more, or on read error (the error is available via Err).
func (cu *CUCursor) Advance() bool {
	for {
		e, err := cu.r.Next()
		if err != nil {
			cu.cur = nil
			cu.err = err
			return false
		}
		if e == nil {
			cu.cur = nil
			return false
		}
		if e.Tag != dwarf.TagCompileUnit {
			// not expected at the top level of a well-formed object, but
			// skip rather than fail outright.
			cu.r.SkipChildren()
			continue
		}
		cu.cur = e
		cu.r.SkipChildren()
		return true
	}
}

// Entry returns the compile unit DIE the cursor is currently on.
func (cu *CUCursor) Entry() *dwarf.Entry {
	return cu.cur
}

// err is set by Advance when Next fails; exported via Err.
// (kept unexported and accessed via a method rather than exported
// mutable state)
func (cu *CUCursor) Err() error {
	return cu.err
}

// AllDieCursor walks every DIE of an object in pre-order (CU root, its
// children depth-first, then the next CU root). At each
// step it exposes the DIE itself together with its full ancestor chain, so
// callers can answer "is this DIE inside an inlined subroutine?" without
// maintaining their own stack.
type AllDieCursor struct {
	r     *dwarf.Reader
	stack []*dwarf.Entry

	expectChild bool
	done        bool
	err         error
}

// AllDies returns a cursor positioned before the first DIE of the object
// (of any compile unit).
func (c *Context) AllDies() *AllDieCursor {
	return &AllDieCursor{r: c.dwrf.Reader()}
}

// Advance moves to the next DIE in pre-order. Returns false once every DIE
// of every compile unit has been visited, or on read error (see Err).
func (a *AllDieCursor) Advance() bool {
	if a.done {
		return false
	}
	for {
		e, err := a.r.Next()
		if err != nil {
			a.err = err
			a.done = true
			return false
		}
		if e == nil {
			a.done = true
			return false
		}
		if e.Tag == 0 {
			// null entry: terminates a child list. if the current DIE
			// announced children but has none, the list closed is its own
			// empty one and it stays on the stack, so the next real entry
			// replaces it as its sibling. otherwise the list closed is that
			// of the current DIE's parent: the current DIE is popped and the
			// next real entry, if any, is a sibling of the new stack top.
			if a.expectChild {
				a.expectChild = false
				continue
			}
			if len(a.stack) > 0 {
				a.stack = a.stack[:len(a.stack)-1]
			}
			continue
		}

		if len(a.stack) == 0 || a.expectChild {
			a.stack = append(a.stack, e)
		} else {
			a.stack[len(a.stack)-1] = e
		}
		a.expectChild = e.Children
		return true
	}
}

// Current returns the DIE the cursor is currently on.
func (a *AllDieCursor) Current() *dwarf.Entry {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

// Stack returns the ancestor chain of the current DIE, root (the
// compile unit) first and the current DIE itself last. The returned slice
// is only valid until the next call to Advance.
func (a *AllDieCursor) Stack() []*dwarf.Entry {
	return a.stack
}

// Parent returns the current DIE's immediate parent, or nil if the current
// DIE is a compile unit root.
func (a *AllDieCursor) Parent() *dwarf.Entry {
	if len(a.stack) < 2 {
		return nil
	}
	return a.stack[len(a.stack)-2]
}

// CU returns the compile unit DIE the current DIE belongs to.
func (a *AllDieCursor) CU() *dwarf.Entry {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[0]
}

// Err returns the error, if any, that stopped iteration.
func (a *AllDieCursor) Err() error {
	return a.err
}
