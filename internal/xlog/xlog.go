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

// Package xlog is a small tag-based logger, in the mould of gopher2600's
// logger package. Unlike that package -- which buffers entries for a GUI
// log viewer to drain on demand via Tail()/Write() -- entries here are
// written through to the underlying io.Writer as soon as Log/Logf is
// called, because this tool's diagnostics must appear on stderr in
// traversal order as DIEs and files are processed, not at the end of a run.
//
// A Permission can still gate logging conditionally; dwlocstat doesn't use
// that (all diagnostics are always shown) but the hook is kept because every
// caller in this package already codes against it, and it costs nothing to
// honour.
package xlog

import (
	"fmt"
	"io"
	"sync"
)

// Permission lets a caller suppress logging conditionally. The
// AlwaysAllow value satisfies it unconditionally.
type Permission interface {
	AllowLogging() bool
}

type alwaysAllow struct{}

func (alwaysAllow) AllowLogging() bool { return true }

// AlwaysAllow is the Permission used when the caller has no reason to
// suppress logging.
var AlwaysAllow Permission = alwaysAllow{}

// Logger is a tag-based logger that writes each entry through to w
// immediately.
type Logger struct {
	mu sync.Mutex
	w  io.Writer
}

// New creates a Logger that writes to w.
func New(w io.Writer) *Logger {
	return &Logger{w: w}
}

// Log writes "tag: detail\n" to the logger's writer, provided p allows it.
// detail is formatted according to its type: errors and fmt.Stringer use
// their own string forms; anything else falls back to the %v verb.
func (l *Logger) Log(p Permission, tag string, detail interface{}) {
	if !p.AllowLogging() {
		return
	}
	l.write(tag, format(detail))
}

// Logf is like Log but accepts a format string and arguments for detail.
func (l *Logger) Logf(p Permission, tag string, format string, args ...interface{}) {
	if !p.AllowLogging() {
		return
	}
	l.write(tag, fmt.Sprintf(format, args...))
}

func (l *Logger) write(tag, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, "%s: %s\n", tag, detail)
}

func format(detail interface{}) string {
	switch v := detail.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
