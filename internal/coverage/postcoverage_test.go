package coverage

import (
	"testing"

	"github.com/jetsetilly/dwlocstat/internal/category"
	"github.com/jetsetilly/dwlocstat/internal/tally"
)

func TestClassifyNoCoverage(t *testing.T) {
	bitmask, out := Classify(Result{Coverage: tally.SharpZero}, 0, false, 0)
	if !out.IsProceed() {
		t.Fatalf("expected Proceed, got %+v", out)
	}
	if !bitmask.Has(category.NoCoverage) {
		t.Errorf("expected no_coverage tagged, got %v", bitmask)
	}
}

func TestClassifyNoCoverageIgnored(t *testing.T) {
	_, out := Classify(Result{Coverage: tally.SharpZero}, 0, false, category.Set(category.NoCoverage))
	if !out.IsSkipDie() {
		t.Fatalf("expected SkipDie when no_coverage is ignored, got %+v", out)
	}
}

func TestClassifyMutableImmutable(t *testing.T) {
	bitmask, out := Classify(Result{Coverage: 100, Mutable: true}, 0, true, 0)
	if !out.IsProceed() {
		t.Fatalf("expected Proceed, got %+v", out)
	}
	if !bitmask.Has(category.Mutable) {
		t.Errorf("expected mutable tagged, got %v", bitmask)
	}

	bitmask, out = Classify(Result{Coverage: 100, Immutable: true}, 0, true, 0)
	if !out.IsProceed() {
		t.Fatalf("expected Proceed, got %+v", out)
	}
	if !bitmask.Has(category.Immutable) {
		t.Errorf("expected immutable tagged, got %v", bitmask)
	}
}

func TestClassifyNeitherMutableNorImmutableIsAnError(t *testing.T) {
	_, out := Classify(Result{Coverage: 100}, 0, true, 0)
	if !out.IsSkipDie() || out.Err == nil {
		t.Fatalf("expected a SkipDie carrying an error, got %+v", out)
	}
}

func TestClassifySingleAddrAndImplicitPointerTagging(t *testing.T) {
	bitmask, out := Classify(Result{Coverage: 100, SingleAddr: true, ImplicitPointer: true}, 0, false, 0)
	if !out.IsProceed() {
		t.Fatalf("expected Proceed, got %+v", out)
	}
	if !bitmask.Has(category.SingleAddr) || !bitmask.Has(category.ImplicitPointer) {
		t.Errorf("expected single_addr and implicit_pointer tagged, got %v", bitmask)
	}
}

func TestClassifyFinalIgnoreIntersection(t *testing.T) {
	// artificial was already folded into the bitmask by the classifier; the
	// ignore mask names it even though post-coverage classification itself
	// never sets that bit.
	_, out := Classify(Result{Coverage: 100}, category.Set(category.Artificial), false, category.Set(category.Artificial))
	if !out.IsSkipDie() {
		t.Fatalf("expected SkipDie from the final ignore-mask intersection check, got %+v", out)
	}
}
