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

// Package report implements the reporter: it walks a Tally bucket by
// bucket, using a fresh bucket.Rule instance, and writes the
// cov%/samples/cumul table.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jetsetilly/dwlocstat/internal/bucket"
	"github.com/jetsetilly/dwlocstat/internal/tally"
)

// Write renders t to w, stepping rule (which the caller should construct
// fresh per file via bucket.Parse, since Next mutates it). If t has
// no samples at all, it writes the one-line "no coverage" message instead
// of a table.
func Write(w io.Writer, t *tally.Tally, rule *bucket.Rule) error {
	if t.Total == 0 {
		_, err := fmt.Fprintln(w, "No coverage recorded.")
		return err
	}

	if _, err := fmt.Fprintln(w, "cov%\tsamples\tcumul"); err != nil {
		return err
	}

	var cumulative, last uint64
	lastPct := tally.SharpZero

	for v := tally.SharpZero; v <= 100; v++ {
		cumulative += t.Count(v)
		if !rule.Match(v) {
			continue
		}

		samples := cumulative - last

		if lastPct == tally.SharpZero && v > tally.SharpZero {
			lastPct = 0
		}

		label := "0.0"
		if lastPct != tally.SharpZero {
			label = strconv.Itoa(int(lastPct))
		}
		if lastPct != v {
			label += ".." + strconv.Itoa(int(v))
		}

		_, err := fmt.Fprintf(w, "%s\t%d/%d%%\t%d/%d%%\n",
			label, samples, pct(samples, t.Total), cumulative, pct(cumulative, t.Total))
		if err != nil {
			return err
		}

		last = cumulative
		lastPct = v + 1
		rule.Next()
	}
	return nil
}

func pct(n, total uint64) uint64 {
	if total == 0 {
		return 0
	}
	return 100 * n / total
}
