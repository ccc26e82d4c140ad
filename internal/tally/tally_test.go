package tally

import "testing"

func TestFromRatio(t *testing.T) {
	cases := []struct {
		covered, length uint64
		want            Coverage
	}{
		{0, 0, SharpZero},
		{0, 100, SharpZero},
		{1, 100, 1},
		{50, 100, 50},
		{99, 100, 99},
		{100, 100, 100},
		{1, 1000, 0},
	}
	for _, c := range cases {
		if got := FromRatio(c.covered, c.length); got != c.want {
			t.Errorf("FromRatio(%d, %d) = %d, want %d", c.covered, c.length, got, c.want)
		}
	}
}

func TestTallyAddAndCount(t *testing.T) {
	tl := New()
	tl.Add(SharpZero)
	tl.Add(50)
	tl.Add(50)
	tl.Add(100)

	if tl.Total != 4 {
		t.Errorf("Total = %d, want 4", tl.Total)
	}
	if tl.Count(SharpZero) != 1 {
		t.Errorf("Count(SharpZero) = %d, want 1", tl.Count(SharpZero))
	}
	if tl.Count(50) != 2 {
		t.Errorf("Count(50) = %d, want 2", tl.Count(50))
	}
	if tl.Count(100) != 1 {
		t.Errorf("Count(100) = %d, want 1", tl.Count(100))
	}
	if tl.Count(1) != 0 {
		t.Errorf("Count(1) = %d, want 0", tl.Count(1))
	}
}
