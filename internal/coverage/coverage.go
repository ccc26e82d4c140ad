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

// Package coverage is the analyzer: it turns a DIE's location attribute
// and effective address ranges into a Coverage value, an optional
// mutability verdict, and (for implicit pointers) a recursive lookup into
// another DIE's location.
package coverage

import (
	"debug/dwarf"
	"fmt"

	"github.com/jetsetilly/dwlocstat/internal/dwarfreader"
	"github.com/jetsetilly/dwlocstat/internal/outcome"
	"github.com/jetsetilly/dwlocstat/internal/tally"
)

// maxImplicitDepth bounds DW_OP_{GNU_,}implicit_pointer recursion. Nothing
// in the DWARF producers this tool has seen nests implicit pointers more
// than one or two levels deep; this is a backstop against pathological or
// cyclic input, not a realistic limit.
const maxImplicitDepth = 32

// locResolver is the subset of *dwarfreader.Context the analyzer needs:
// decoding a raw expression field, decoding a location list, and resolving
// an implicit-pointer target. Declared as an interface so Analyze can be
// driven by a hand-built fake in tests instead of a live DWARF reader.
type locResolver interface {
	NonListOps(f *dwarf.Field) ([]dwarfreader.Op, error)
	DecodeLocationList(offset uint64, cuLowPC uint64) ([]dwarfreader.LocEntry, error)
	ImplicitPointerTarget(op dwarfreader.Op) (*dwarf.Field, error)
}

// Result is the outcome of analyzing one location attribute.
type Result struct {
	Coverage   tally.Coverage
	Mutable    bool
	Immutable  bool
	SingleAddr bool

	// ImplicitPointer is set when the location is a sole implicit-pointer
	// expression/entry and the caller asked for tagging (wantImplicit).
	ImplicitPointer bool
}

// EffectiveRanges walks stack (CU root first, the DIE itself last) from
// the DIE back up to the CU root, returning the nearest non-empty range
// set. Returns an empty slice if none of them carry one.
func EffectiveRanges(rd *dwarfreader.Context, stack []*dwarf.Entry) ([]dwarfreader.Range, error) {
	for i := len(stack) - 1; i >= 0; i-- {
		ranges, err := rd.Ranges(stack[i])
		if err != nil {
			return nil, err
		}
		if len(ranges) > 0 {
			return ranges, nil
		}
	}
	return nil, nil
}

// Analyze is the location dispatch, used both for the top-level DIE
// (wantImplicit reflects whether implicit_pointer tagging is requested at
// all) and recursively for implicit-pointer targets (wantImplicit always
// false there).
func Analyze(rd locResolver, locAttr dwarf.Attr, locField *dwarf.Field, ranges []dwarfreader.Range, followImplicit, wantMutability, wantImplicit bool, depth int) (Result, outcome.Outcome) {
	if locField == nil {
		r := Result{Coverage: tally.SharpZero}
		if wantMutability {
			r.Mutable, r.Immutable = true, true
		}
		return r, outcome.Ok()
	}

	if locAttr == dwarf.AttrConstValue {
		r := Result{Coverage: 100}
		if wantMutability {
			r.Immutable = true
		}
		return r, outcome.Ok()
	}

	switch dwarfreader.ClassifyLocation(locField) {
	case dwarfreader.LocationExpr:
		return analyzeExpr(rd, locField, ranges, followImplicit, wantMutability, wantImplicit, depth)
	default:
		return analyzeList(rd, locField, ranges, followImplicit, wantMutability, wantImplicit, depth)
	}
}

func analyzeExpr(rd locResolver, locField *dwarf.Field, ranges []dwarfreader.Range, followImplicit, wantMutability, wantImplicit bool, depth int) (Result, outcome.Outcome) {
	ops, err := rd.NonListOps(locField)
	if err != nil {
		return Result{}, outcome.Die(fmt.Errorf("decoding location expression: %w", err))
	}

	var r Result
	if len(ops) == 1 && ops[0].Code == dwarfreader.OpAddr {
		r.SingleAddr = true
	}

	sole := len(ops) == 1 && ops[0].IsImplicitPointer()
	if sole && wantImplicit {
		r.ImplicitPointer = true
	}
	if sole && followImplicit {
		inner, out := recurseImplicit(rd, ops[0], ranges, wantMutability, depth)
		if !out.IsProceed() {
			return Result{}, out
		}
		inner.SingleAddr = r.SingleAddr
		inner.ImplicitPointer = r.ImplicitPointer
		return inner, outcome.Ok()
	}

	if wantMutability {
		r.Mutable, r.Immutable = scanMutability(rd, ops, ranges, followImplicit, depth)
	}
	if len(ops) == 0 {
		r.Coverage = tally.SharpZero
	} else {
		r.Coverage = 100
	}
	return r, outcome.Ok()
}

func analyzeList(rd locResolver, locField *dwarf.Field, ranges []dwarfreader.Range, followImplicit, wantMutability, wantImplicit bool, depth int) (Result, outcome.Outcome) {
	offset := dwarfreader.LocationListOffset(locField)
	var cuLow uint64
	if len(ranges) > 0 {
		cuLow = ranges[0].Low
	}
	entries, err := rd.DecodeLocationList(offset, cuLow)
	if err != nil {
		return Result{}, outcome.Die(fmt.Errorf("querying location list at %#x: %w", offset, err))
	}

	var r Result
	var length, covered uint64

	for _, rng := range ranges {
		length += rng.Length()
		for addr := rng.Low; addr < rng.High; addr++ {
			atAddr := dwarfreader.LocationAt(entries, addr)

			addrCovered := false
			var implicitCandidates []dwarfreader.Op

			for _, e := range atAddr {
				sole := len(e.Ops) == 1 && e.Ops[0].IsImplicitPointer()
				if sole && wantImplicit {
					r.ImplicitPointer = true
				}
				switch {
				case len(e.Ops) == 0:
					// empty expression contributes nothing
				case sole && followImplicit:
					implicitCandidates = append(implicitCandidates, e.Ops[0])
				default:
					addrCovered = true
				}
				if wantMutability {
					m, im := scanMutability(rd, e.Ops, ranges, followImplicit, depth)
					if m {
						r.Mutable = true
					}
					if im {
						r.Immutable = true
					}
				}
			}

			if !addrCovered {
				oneByte := []dwarfreader.Range{{Low: addr, High: addr + 1}}
				for _, op := range implicitCandidates {
					inner, out := recurseImplicit(rd, op, oneByte, false, depth)
					if out.IsProceed() && inner.Coverage == 100 {
						addrCovered = true
						break
					}
				}
			}

			if addrCovered {
				covered++
			}
		}
	}

	r.Coverage = tally.FromRatio(covered, length)
	return r, outcome.Ok()
}

// recurseImplicit resolves and recursively analyzes a DW_OP_{GNU_,}implicit_pointer
// target. Resolution failure or depth exhaustion is reported as SHARP_ZERO,
// not as an error: a dangling implicit pointer is a property of the binary,
// not a tool failure.
func recurseImplicit(rd locResolver, op dwarfreader.Op, ranges []dwarfreader.Range, wantMutability bool, depth int) (Result, outcome.Outcome) {
	if depth >= maxImplicitDepth {
		return Result{Coverage: tally.SharpZero}, outcome.Ok()
	}

	targetField, err := rd.ImplicitPointerTarget(op)
	if err != nil || targetField == nil {
		return Result{Coverage: tally.SharpZero}, outcome.Ok()
	}

	return Analyze(rd, dwarf.AttrLocation, targetField, ranges, true, wantMutability, false, depth+1)
}

// scanMutability walks one expression's operator sequence and returns
// whether it contributed a mutable and/or an immutable classification,
// per the mutability scan rules.
func scanMutability(rd locResolver, ops []dwarfreader.Op, ranges []dwarfreader.Range, followImplicit bool, depth int) (mutable, immutable bool) {
	m := true
	commit := func() {
		if m {
			mutable = true
		} else {
			immutable = true
		}
		m = true
	}

	for _, op := range ops {
		switch {
		case op.Code == dwarfreader.OpImplicitValue || op.Code == dwarfreader.OpStackValue:
			m = false
		case op.Code == dwarfreader.OpPiece || op.Code == dwarfreader.OpBitPiece:
			commit()
		case op.IsEntryValue():
			// contributes no decision
		case op.IsImplicitPointer():
			if !followImplicit {
				return true, true
			}
			inner, out := recurseImplicit(rd, op, ranges, true, depth+1)
			if out.IsProceed() {
				if inner.Mutable {
					mutable = true
				}
				if inner.Immutable {
					immutable = true
				}
			}
			return mutable, immutable
		}
	}
	commit()
	return mutable, immutable
}
