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

// Package config holds the single immutable Config struct the CLI layer
// builds from flags (optionally overlaid with a config file via viper)
// and passes into the analyzer by value, replacing the source tool's
// process-wide option globals.
package config

import (
	"github.com/spf13/viper"

	"github.com/jetsetilly/dwlocstat/internal/bucket"
	"github.com/jetsetilly/dwlocstat/internal/category"
)

// Config is immutable once built: every field is read, never mutated, by
// the analyzer.
type Config struct {
	Files []string

	Ignore category.Set
	Dump   category.Set

	Tabulate string

	ShowProgress          bool
	IgnoreImplicitPointer bool
}

// FromFlags builds a Config from already-parsed flag values. unknownClass
// is called once per unrecognised --ignore/--dump token (may be nil).
func FromFlags(files []string, ignoreSpec, dumpSpec, tabulate string, showProgress, ignoreImplicitPointer bool, unknownClass func(flag, bad string)) Config {
	// a config file (searched for by the CLI layer via viper) may supply
	// defaults for the tabulation rule; explicit flags always win, which
	// cobra/pflag already guarantee by only passing non-zero-value flags
	// here when the user actually set them.
	if tabulate == "" {
		if v := viper.GetString("tabulate"); v != "" {
			tabulate = v
		} else {
			tabulate = bucket.Default
		}
	}

	return Config{
		Files:                 files,
		Ignore:                category.ParseSet(ignoreSpec, func(bad string) { reportUnknown(unknownClass, "ignore", bad) }),
		Dump:                  category.ParseSet(dumpSpec, func(bad string) { reportUnknown(unknownClass, "dump", bad) }),
		Tabulate:              tabulate,
		ShowProgress:          showProgress,
		IgnoreImplicitPointer: ignoreImplicitPointer,
	}
}

func reportUnknown(f func(flag, bad string), flag, bad string) {
	if f != nil {
		f(flag, bad)
	}
}

// Interest is the ignore ∪ dump mask (no other category source is folded
// in) that the classifier's
// inline membership gate uses to decide whether to even bother walking the
// ancestor stack for inlined/inlined_subroutine membership.
func (c Config) Interest() category.Set {
	return c.Ignore | c.Dump
}

// FollowImplicitPointer reports whether implicit-pointer follow-through is
// enabled (the default; --ignore-implicit-pointer disables it).
func (c Config) FollowImplicitPointer() bool {
	return !c.IgnoreImplicitPointer
}

// WantMutability reports whether either the ignore or the dump mask cares
// about mutable/immutable, which is the only reason to pay for a
// mutability scan at all.
func (c Config) WantMutability() bool {
	interest := c.Interest()
	return interest.Has(category.Mutable) || interest.Has(category.Immutable)
}

// WantImplicitPointerTag reports whether either mask cares about the
// implicit_pointer tag itself, mirroring locstats.cc's derivation of
// interested_implicit from ignore|dump rather than ignore alone.
func (c Config) WantImplicitPointerTag() bool {
	return c.Interest().Has(category.ImplicitPointer)
}
