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

package scan

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/jetsetilly/dwlocstat/internal/category"
	"github.com/jetsetilly/dwlocstat/internal/classify"
)

var (
	dumpHeaderColor = color.New(color.FgYellow, color.Bold)
	dumpOffsetColor = color.New(color.FgHiBlack)
	dumpTagColor    = color.New(color.FgCyan)
)

// writeDump prints a dumped DIE's category names and its ancestor chain,
// one line per ancestor indented by depth, matching the source tool's
// DIE_TYPES-macro-plus-stack dump.
func writeDump(w io.Writer, cand classify.Candidate, bitmask category.Set) {
	dumpHeaderColor.Fprintf(w, "%s DIE:\n", strings.Join(category.Names(bitmask), " "))

	pad := " "
	for _, e := range cand.Stack {
		dumpOffsetColor.Fprintf(w, "%s%s ", pad, fmt.Sprintf("%#x", uint64(e.Offset)))
		dumpTagColor.Fprintln(w, e.Tag.String())
		pad += " "
	}
}
