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

// Package scan is the per-file orchestration glue: it drives the all-DIEs
// cursor, runs every DIE through the classifier and coverage analyzer,
// dumps categorized DIEs, and accumulates the tally the reporter will
// render.
package scan

import (
	"debug/dwarf"
	"fmt"
	"io"

	"github.com/jetsetilly/dwlocstat/internal/classify"
	"github.com/jetsetilly/dwlocstat/internal/config"
	"github.com/jetsetilly/dwlocstat/internal/coverage"
	"github.com/jetsetilly/dwlocstat/internal/dwarfreader"
	"github.com/jetsetilly/dwlocstat/internal/outcome"
	"github.com/jetsetilly/dwlocstat/internal/tally"
	"github.com/jetsetilly/dwlocstat/internal/xlog"
)

// dieTag is the log tag every per-DIE/per-file diagnostic is filed under.
const dieTag = "dwlocstat"

// File opens path and walks every DIE of every compile unit, returning the
// accumulated Tally. Per-DIE failures are logged and skipped; a failure
// that prevents iterating the object at all is reported as outcome.File.
func File(path string, cfg config.Config, log *xlog.Logger, progress, dump io.Writer) (*tally.Tally, outcome.Outcome) {
	rd, err := dwarfreader.Open(path)
	if err != nil {
		return nil, outcome.File(err)
	}
	defer rd.Close()

	t := tally.New()
	interest := cfg.Interest()
	wantMutability := cfg.WantMutability()
	wantImplicitTag := cfg.WantImplicitPointerTag()
	follow := cfg.FollowImplicitPointer()

	cur := rd.AllDies()
	var prevCU *dwarf.Entry

	for cur.Advance() {
		if cfg.ShowProgress {
			if cu := cur.CU(); cu != prevCU {
				prevCU = cu
				fmt.Fprintf(progress, "\r%#x", uint64(cu.Offset))
			}
		}

		cand, out := classify.Gate(rd, cur, cfg.Ignore, interest)
		if out.IsSkipDie() {
			logSkip(log, out.Err)
			continue
		}

		ranges, err := coverage.EffectiveRanges(rd, cand.Stack)
		if err != nil {
			log.Log(xlog.AlwaysAllow, dieTag, fmt.Errorf("DIE %s: no address ranges found: %w", offsetHex(cand.Die), err))
			continue
		}
		if len(ranges) == 0 {
			log.Log(xlog.AlwaysAllow, dieTag, fmt.Errorf("DIE %s: no address ranges found", offsetHex(cand.Die)))
			continue
		}

		result, out := coverage.Analyze(rd, cand.LocationAttr, cand.LocationField, ranges, follow, wantMutability, wantImplicitTag, 0)
		if out.IsSkipDie() {
			if out.Err != nil {
				log.Log(xlog.AlwaysAllow, dieTag, fmt.Errorf("DIE %s: cannot decode location: %w", offsetHex(cand.Die), out.Err))
			}
			continue
		}

		bitmask, out := coverage.Classify(result, cand.Bitmask, wantMutability, cfg.Ignore)
		if out.IsSkipDie() {
			logSkip(log, out.Err)
			continue
		}

		if bitmask.Intersects(cfg.Dump) {
			writeDump(dump, cand, bitmask)
		}

		t.Add(result.Coverage)
	}

	if cfg.ShowProgress {
		fmt.Fprintln(progress)
	}

	if err := cur.Err(); err != nil {
		return t, outcome.File(fmt.Errorf("error iterating compile units in %s: %w", path, err))
	}
	return t, outcome.Ok()
}

func logSkip(log *xlog.Logger, err error) {
	if err != nil {
		log.Log(xlog.AlwaysAllow, dieTag, err)
	}
}

func offsetHex(e *dwarf.Entry) string {
	return fmt.Sprintf("%#x", uint64(e.Offset))
}
