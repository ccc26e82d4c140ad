package config

import (
	"testing"

	"github.com/jetsetilly/dwlocstat/internal/bucket"
	"github.com/jetsetilly/dwlocstat/internal/category"
)

func TestFromFlagsDefaults(t *testing.T) {
	cfg := FromFlags([]string{"a.o"}, "", "", "", false, false, nil)

	if cfg.Tabulate != bucket.Default {
		t.Errorf("Tabulate = %q, want %q", cfg.Tabulate, bucket.Default)
	}
	if cfg.Ignore.Any() {
		t.Errorf("Ignore should be empty by default")
	}
	if !cfg.FollowImplicitPointer() {
		t.Errorf("FollowImplicitPointer should default to true")
	}
}

func TestFromFlagsIgnoreAndDump(t *testing.T) {
	var unknown []string
	cfg := FromFlags([]string{"a.o"}, "artificial,no_coverage", "mutable", "5:5", false, true,
		func(flag, bad string) { unknown = append(unknown, flag+":"+bad) })

	if !cfg.Ignore.Has(category.Artificial) || !cfg.Ignore.Has(category.NoCoverage) {
		t.Errorf("Ignore = %v, want artificial|no_coverage", cfg.Ignore)
	}
	if !cfg.Dump.Has(category.Mutable) {
		t.Errorf("Dump = %v, want mutable", cfg.Dump)
	}
	if cfg.Tabulate != "5:5" {
		t.Errorf("Tabulate = %q, want 5:5", cfg.Tabulate)
	}
	if cfg.FollowImplicitPointer() {
		t.Errorf("FollowImplicitPointer should be false when --ignore-implicit-pointer is set")
	}
	if len(unknown) != 0 {
		t.Errorf("unexpected unknown classes: %v", unknown)
	}
}

func TestFromFlagsUnknownClassReported(t *testing.T) {
	var unknown []string
	FromFlags([]string{"a.o"}, "bogus", "", "", false, false,
		func(flag, bad string) { unknown = append(unknown, flag+":"+bad) })

	if len(unknown) != 1 || unknown[0] != "ignore:bogus" {
		t.Errorf("unknown = %v, want [ignore:bogus]", unknown)
	}
}

func TestWantMutability(t *testing.T) {
	cfg := FromFlags([]string{"a.o"}, "mutable", "", "", false, false, nil)
	if !cfg.WantMutability() {
		t.Errorf("WantMutability should be true when ignore includes mutable")
	}

	cfg = FromFlags([]string{"a.o"}, "artificial", "", "", false, false, nil)
	if cfg.WantMutability() {
		t.Errorf("WantMutability should be false when neither mask mentions mutable/immutable")
	}
}

func TestWantImplicitPointerTag(t *testing.T) {
	cfg := FromFlags([]string{"a.o"}, "", "implicit_pointer", "", false, false, nil)
	if !cfg.WantImplicitPointerTag() {
		t.Errorf("WantImplicitPointerTag should be true when dump includes implicit_pointer")
	}
}
