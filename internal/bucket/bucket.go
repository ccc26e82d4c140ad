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

// Package bucket parses and steps through the small "10:10"-style
// tabulation rule grammar:
//
//	rule  := item ("," item)*
//	item  := start (":" step)?
//	start := "0.0" | integer     ; 0.0 => SharpZero
//	step  := integer             ; default 0
//
// After parsing, a sentinel (100, 0) is always appended and the list is
// sorted by start.
package bucket

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jetsetilly/dwlocstat/internal/tally"
)

// item is one (start, step) pair of the rule.
type item struct {
	start tally.Coverage
	step  int
}

// Rule is the ordered, mutable stepper over bucket boundaries. Match and
// Next operate on the head item only; the sentinel (100, 0) keeps the list
// non-empty until the bucket ending at 100 has been passed, after which
// the list is empty and Match must not be called again.
type Rule struct {
	items []item
}

// Default is the rule used when no --tabulate option is given. Its leading
// "0.0" item gives SharpZero a bucket of its own ahead of the "10:10"
// steps.
const Default = "0.0,10:10"

// Parse parses rule text into a Rule. Garbage trailing an item's step is
// tolerated: it is reported via warn (which may be nil) and the item's
// step is treated as 0. Empty items (consecutive or trailing commas) are
// ignored.
func Parse(text string, warn func(msg string)) *Rule {
	var items []item

	for _, raw := range strings.Split(text, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		var start tally.Coverage
		rest := raw
		if strings.HasPrefix(raw, "0.0") {
			start = tally.SharpZero
			rest = raw[3:]
		} else {
			n, consumed := leadingInt(raw)
			start = tally.Coverage(n)
			rest = raw[consumed:]
		}

		step := 0
		if rest != "" {
			if rest[0] != ':' {
				if warn != nil {
					warn(fmt.Sprintf("ignoring garbage at the end of rule item: %q", rest))
				}
			} else {
				rest = rest[1:]
				n, consumed := leadingInt(rest)
				step = n
				if consumed < len(rest) {
					step = 0
					if warn != nil {
						warn(fmt.Sprintf("ignoring garbage at the end of rule item: %q", rest[consumed:]))
					}
				}
			}
		}

		items = append(items, item{start: start, step: step})
	}

	items = append(items, item{start: 100, step: 0})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].start < items[j].start
	})

	return &Rule{items: items}
}

// leadingInt parses the longest leading run of an optional sign followed
// by digits from s, returning the parsed value and how many bytes of s it
// consumed. Returns (0, 0) if s doesn't start with a valid integer.
func leadingInt(s string) (int, int) {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, 0
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, 0
	}
	return n, i
}

// Match reports whether the current bucket ends at v.
func (r *Rule) Match(v tally.Coverage) bool {
	return r.items[0].start == v
}

// Next advances the bucket engine past its current head item, per spec
// the grammar: a zero step pops the head; a nonzero step advances start by step
// (promoting SharpZero to 0 first) and then collapses any item(s) that
// the advance has caught up to or overtaken.
func (r *Rule) Next() {
	head := &r.items[0]
	if head.step == 0 {
		r.items = r.items[1:]
		return
	}

	if head.start == tally.SharpZero {
		head.start = 0
	}
	head.start += tally.Coverage(head.step)

	// the just-advanced head is discarded in favour of whatever it has
	// caught up to or overtaken; this can cascade through several stale
	// entries (e.g. "5:5,10:10" collapsing its 5-stepper once it reaches
	// the 10-stepper's boundary).
	if len(r.items) > 1 && r.items[0].start > r.items[1].start {
		r.items = r.items[1:]
	}
	for len(r.items) > 1 && r.items[0].start == r.items[1].start {
		r.items = r.items[1:]
	}
}
