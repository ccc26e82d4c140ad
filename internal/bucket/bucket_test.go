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

package bucket_test

import (
	"os"
	"testing"

	"github.com/bradleyjkemp/memviz"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/dwlocstat/internal/bucket"
	"github.com/jetsetilly/dwlocstat/internal/tally"
)

func walk(r *bucket.Rule, from, to tally.Coverage) []tally.Coverage {
	var ends []tally.Coverage
	for v := from; v <= to; v++ {
		if r.Match(v) {
			ends = append(ends, v)
			r.Next()
		}
	}
	return ends
}

func TestDefaultRuleEndsAt10sAnd100(t *testing.T) {
	r := bucket.Parse(bucket.Default, nil)
	ends := walk(r, tally.SharpZero, 100)
	require.Equal(t, []tally.Coverage{
		tally.SharpZero, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
	}, ends)
}

func TestSharpZeroIsItsOwnBucketEvenWithoutExplicitRule(t *testing.T) {
	r := bucket.Parse(bucket.Default, nil)
	require.True(t, r.Match(tally.SharpZero))
}

// TestBucketCollapse verifies that "5:5,10:10" emits
// a bucket ending at 10 and then collapses the stale 5-stepper so the next
// bucket boundary is 20, not 15.
func TestBucketCollapse(t *testing.T) {
	r := bucket.Parse("5:5,10:10", nil)
	ends := walk(r, tally.SharpZero, 100)
	require.Equal(t, []tally.Coverage{
		5, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100,
	}, ends)
}

func TestParseTrailingGarbageDefaultsStepToZero(t *testing.T) {
	var warned []string
	r := bucket.Parse("10xyz", func(msg string) { warned = append(warned, msg) })
	require.NotEmpty(t, warned)
	require.True(t, r.Match(10))
	r.Next()
	require.True(t, r.Match(100))
}

func TestParseEmptyItemsIgnored(t *testing.T) {
	r := bucket.Parse("10:10,,20:5,", nil)
	ends := walk(r, tally.SharpZero, 100)
	require.Contains(t, ends, tally.Coverage(10))
}

func TestSentinelAlwaysReachable(t *testing.T) {
	r := bucket.Parse("", nil)
	ends := walk(r, tally.SharpZero, 100)
	require.Equal(t, []tally.Coverage{100}, ends)
}

// TestVisualizeParsedRule renders the parsed rule's internal item list to
// a .dot file, a debugging aid in the same spirit as a command-line
// parser test that dumps its parsed command tree.
func TestVisualizeParsedRule(t *testing.T) {
	r := bucket.Parse("5:5,10:10", nil)

	dir := t.TempDir()
	f, err := os.Create(dir + "/bucket.dot")
	require.NoError(t, err)
	defer f.Close()

	memviz.Map(f, r)

	info, err := f.Stat()
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}
