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

// Package classify implements the per-DIE filter: the gates that decide
// whether a DIE yielded by the all-DIEs iterator is even a candidate for
// coverage analysis, plus the partial category bitmask (artificial /
// inlined / inlined_subroutine) those gates derive along the way.
package classify

import (
	"debug/dwarf"

	"github.com/jetsetilly/dwlocstat/internal/category"
	"github.com/jetsetilly/dwlocstat/internal/dwarfreader"
	"github.com/jetsetilly/dwlocstat/internal/outcome"
)

// dieCursor is the subset of *dwarfreader.AllDieCursor the gates need:
// the DIE under consideration, its immediate parent, and its full
// ancestor chain. Declared as an interface so the gates can be driven by
// a hand-built stack in tests instead of a live DWARF reader.
type dieCursor interface {
	Current() *dwarf.Entry
	Parent() *dwarf.Entry
	Stack() []*dwarf.Entry
}

// Candidate is a DIE that survived every gate, with the location
// attribute chosen by the rule in gate 7 and the partial bitmask derived
// along the way (artificial, inlined and inlined_subroutine only).
type Candidate struct {
	Die   *dwarf.Entry
	Stack []*dwarf.Entry

	// LocationAttr is dwarf.AttrLocation or dwarf.AttrConstValue,
	// whichever gate 7 selected; LocationField is its resolved value.
	LocationAttr  dwarf.Attr
	LocationField *dwarf.Field

	Bitmask category.Set
}

// Gate runs every classification gate against the DIE the cursor currently
// sits on. ignore/interest are the *ignore* and *interest* (ignore ∪ dump)
// masks from the caller's configuration.
//
// Returns outcome.Ok with a populated Candidate on success, or
// outcome.SkipDie (never SkipFile -- classification failures are always
// per-DIE) when a gate rejects the DIE.
func Gate(rd *dwarfreader.Context, cur dieCursor, ignore, interest category.Set) (Candidate, outcome.Outcome) {
	die := cur.Current()

	// 1. tag gate
	if die.Tag != dwarf.TagVariable && die.Tag != dwarf.TagFormalParameter {
		return Candidate{}, outcome.Die(nil)
	}

	// 2. declaration gate
	if dwarfreader.FormFlag(dwarfreader.Attr(die, dwarf.AttrDeclaration)) {
		return Candidate{}, outcome.Die(nil)
	}

	// 3. artificial
	artificial := dwarfreader.FormFlag(dwarfreader.Attr(die, dwarf.AttrArtificial))
	if ignore.Has(category.Artificial) && artificial {
		return Candidate{}, outcome.Die(nil)
	}

	// 4. parameter parent
	if die.Tag == dwarf.TagFormalParameter {
		if parent := cur.Parent(); parent != nil {
			if parent.Tag == dwarf.TagSubroutineType {
				return Candidate{}, outcome.Die(nil)
			}
			if parent.Tag == dwarf.TagSubprogram && dwarfreader.FormFlag(dwarfreader.Attr(parent, dwarf.AttrDeclaration)) {
				return Candidate{}, outcome.Die(nil)
			}
		}
	}

	var bitmask category.Set
	if artificial {
		bitmask = bitmask.Set(category.Artificial)
	}

	// 5. inline membership
	wantInlined := interest.Has(category.Inlined)
	wantInlinedSub := interest.Has(category.InlinedSubroutine)
	if wantInlined || wantInlinedSub {
		var gotInlined, gotInlinedSub bool
		stack := cur.Stack()
		for i := len(stack) - 1; i >= 0; i-- {
			if wantInlined && !gotInlined && stack[i].Tag == dwarf.TagSubprogram {
				if f := dwarfreader.Attr(stack[i], dwarf.AttrInline); f != nil {
					if v, ok := dwarfreader.FormUint(f); ok && v != 0 {
						gotInlined = true
					}
				}
			}
			if wantInlinedSub && !gotInlinedSub && stack[i].Tag == dwarf.TagInlinedSubroutine {
				gotInlinedSub = true
			}
			if (!wantInlined || gotInlined) && (!wantInlinedSub || gotInlinedSub) {
				break
			}
		}
		if gotInlined {
			if ignore.Has(category.Inlined) {
				return Candidate{}, outcome.Die(nil)
			}
			bitmask = bitmask.Set(category.Inlined)
		}
		if gotInlinedSub {
			if ignore.Has(category.InlinedSubroutine) {
				return Candidate{}, outcome.Die(nil)
			}
			bitmask = bitmask.Set(category.InlinedSubroutine)
		}
	}

	external := dwarfreader.FormFlag(dwarfreader.Attr(die, dwarf.AttrExternal))
	locField := rd.AttrIntegrated(die, dwarf.AttrLocation)

	// 6. external-without-location
	if external && locField == nil {
		return Candidate{}, outcome.Die(nil)
	}

	// 7. location resolution: location, else const_value, else none.
	attr := dwarf.AttrLocation
	field := locField
	if field == nil {
		field = rd.AttrIntegrated(die, dwarf.AttrConstValue)
		attr = dwarf.AttrConstValue
	}

	return Candidate{
		Die:           die,
		Stack:         append([]*dwarf.Entry(nil), cur.Stack()...),
		LocationAttr:  attr,
		LocationField: field,
		Bitmask:       bitmask,
	}, outcome.Ok()
}
