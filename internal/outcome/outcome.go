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

// Package outcome replaces the source tool's exception-based skip control
// with an explicit three-arm result. The analyzer returns one of these
// from any function that can fail at DIE or file granularity; callers
// match on Kind instead of recovering from a panic or catching an
// exception.
package outcome

// Kind distinguishes the three error-handling levels: proceed, skip one
// DIE, or abandon the whole file.
type Kind int

const (
	// Proceed means no error occurred; processing continues normally.
	Proceed Kind = iota
	// SkipDie means the current DIE cannot be processed and must be
	// skipped; the caller continues with the next DIE.
	SkipDie
	// SkipFile means the current input file cannot be processed and must
	// be abandoned; the caller continues with the next file.
	SkipFile
)

// Outcome is the result of an operation that may need to skip a DIE or an
// entire file rather than fail the whole run.
type Outcome struct {
	Kind Kind
	Err  error
}

// Ok is the zero-value "proceed" outcome.
func Ok() Outcome {
	return Outcome{Kind: Proceed}
}

// Die builds a SkipDie outcome carrying the reason.
func Die(err error) Outcome {
	return Outcome{Kind: SkipDie, Err: err}
}

// File builds a SkipFile outcome carrying the reason.
func File(err error) Outcome {
	return Outcome{Kind: SkipFile, Err: err}
}

// IsProceed reports whether no skip is required.
func (o Outcome) IsProceed() bool { return o.Kind == Proceed }

// IsSkipDie reports whether the current DIE should be skipped.
func (o Outcome) IsSkipDie() bool { return o.Kind == SkipDie }

// IsSkipFile reports whether the current file should be abandoned.
func (o Outcome) IsSkipFile() bool { return o.Kind == SkipFile }
