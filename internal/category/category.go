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

// Package category implements the fixed-width orthogonal category bitmask
// of the data model: a DIE may be tagged with several of these simultaneously
// (e.g. inlined | immutable | single_addr).
package category

import "strings"

// Tag is a single bit of the Set bitmask.
type Tag uint

const (
	SingleAddr Tag = 1 << iota
	Artificial
	Inlined
	InlinedSubroutine
	NoCoverage
	Mutable
	Immutable
	ImplicitPointer
)

// all is the ordered list of every known tag, used for parsing, naming and
// iteration (dump output walks this in declaration order, matching the
// source tool's DIE_TYPES x-macro order).
var all = []struct {
	tag  Tag
	name string
}{
	{SingleAddr, "single_addr"},
	{Artificial, "artificial"},
	{Inlined, "inlined"},
	{InlinedSubroutine, "inlined_subroutine"},
	{NoCoverage, "no_coverage"},
	{Mutable, "mutable"},
	{Immutable, "immutable"},
	{ImplicitPointer, "implicit_pointer"},
}

// Set is a bitmask over Tag.
type Set Tag

// Has reports whether every bit of t is present in s.
func (s Set) Has(t Tag) bool {
	return Tag(s)&t == t
}

// Set returns a copy of s with t's bits set.
func (s Set) Set(t Tag) Set {
	return s | Set(t)
}

// Intersects reports whether s and other share any bit.
func (s Set) Intersects(other Set) bool {
	return Tag(s)&Tag(other) != 0
}

// Any reports whether s has any bit set at all.
func (s Set) Any() bool {
	return s != 0
}

// ParseTag resolves a single CLASS token (as used by --ignore/--dump) to a
// Tag. Returns false if name isn't a recognised class.
func ParseTag(name string) (Tag, bool) {
	for _, e := range all {
		if e.name == name {
			return e.tag, true
		}
	}
	return 0, false
}

// ParseSet parses a comma-separated CLASS[,...] list into a Set, logging
// (via the report function rep, which may be nil) any unrecognised token
// instead of failing outright -- unrecognised classes are simply ignored,
// matching the source tool's die_type_matcher.
func ParseSet(spec string, rep func(bad string)) Set {
	var s Set
	if spec == "" {
		return s
	}
	for _, item := range strings.Split(spec, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		tag, ok := ParseTag(item)
		if !ok {
			if rep != nil {
				rep(item)
			}
			continue
		}
		s = s.Set(tag)
	}
	return s
}

// NameOf returns the human-readable class name for a single tag bit, or
// "" if t is not (or not only) one of the known bits. This is the
// name lookup function for category tags specifically (DWARF tag/attribute/
// opcode name tables live in internal/dwarfreader).
func NameOf(t Tag) string {
	for _, e := range all {
		if e.tag == t {
			return e.name
		}
	}
	return ""
}

// Names returns the names of every tag set in s, in declaration order.
func Names(s Set) []string {
	var names []string
	for _, e := range all {
		if s.Has(e.tag) {
			names = append(names, e.name)
		}
	}
	return names
}
