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

package xlog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/dwlocstat/internal/xlog"
)

func TestLogWritesThrough(t *testing.T) {
	var w strings.Builder
	log := xlog.New(&w)

	log.Log(xlog.AlwaysAllow, "test", "this is a test")
	require.Equal(t, "test: this is a test\n", w.String())

	log.Log(xlog.AlwaysAllow, "test2", "this is another test")
	require.Equal(t, "test: this is a test\ntest2: this is another test\n", w.String())
}

type prohibit struct{ allow bool }

func (p prohibit) AllowLogging() bool { return p.allow }

func TestPermission(t *testing.T) {
	var w strings.Builder
	log := xlog.New(&w)

	log.Log(prohibit{allow: false}, "tag", "detail")
	require.Equal(t, "", w.String())

	log.Log(prohibit{allow: true}, "tag", "detail")
	require.Equal(t, "tag: detail\n", w.String())
}

func TestErrorAndStringerDetail(t *testing.T) {
	var w strings.Builder
	log := xlog.New(&w)

	log.Log(xlog.AlwaysAllow, "tag", errors.New("boom"))
	require.Equal(t, "tag: boom\n", w.String())

	w.Reset()
	log.Logf(xlog.AlwaysAllow, "tag", "wrapped: %v", errors.New("boom"))
	require.Equal(t, "tag: wrapped: boom\n", w.String())
}

func TestIntDetailFallsBackToPercentV(t *testing.T) {
	var w strings.Builder
	log := xlog.New(&w)

	log.Log(xlog.AlwaysAllow, "tag", 100)
	require.Equal(t, "tag: 100\n", w.String())
}
