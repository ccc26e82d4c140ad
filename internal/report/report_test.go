package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jetsetilly/dwlocstat/internal/bucket"
	"github.com/jetsetilly/dwlocstat/internal/tally"
)

func TestWriteNoCoverage(t *testing.T) {
	var buf bytes.Buffer
	t_ := tally.New()
	rule := bucket.Parse(bucket.Default, nil)

	if err := Write(&buf, t_, rule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "No coverage recorded.\n" {
		t.Errorf("got %q", got)
	}
}

func TestWriteDefaultRule(t *testing.T) {
	var buf bytes.Buffer
	tl := tally.New()
	tl.Add(tally.SharpZero)
	tl.Add(5)
	tl.Add(100)
	tl.Add(100)
	rule := bucket.Parse(bucket.Default, nil)

	if err := Write(&buf, tl, rule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "cov%\tsamples\tcumul" {
		t.Fatalf("unexpected header: %q", lines[0])
	}

	// the SharpZero sample is its own bucket, labeled "0.0".
	if !strings.HasPrefix(lines[1], "0.0\t1/") {
		t.Errorf("unexpected SharpZero row: %q", lines[1])
	}

	// the final row's cumulative column must reach the full total (4/100%).
	last := lines[len(lines)-1]
	if !strings.Contains(last, "4/100%") {
		t.Errorf("final cumulative row should reach 4/100%%: %q", last)
	}
}
