package jsondiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStats(t *testing.T) {
	patch := Patch{
		Add{Path: Pointer{"a"}, Value: int64(1)},
		Add{Path: Pointer{"b"}, Value: int64(2)},
		Remove{Path: Pointer{"c"}, Value: int64(3)},
		Replace{Path: Pointer{"d"}, Old: int64(4), New: int64(5)},
	}

	stats := patch.Stats()
	expect := Stats{Adds: 2, Removes: 1, Replaces: 1}
	if d := cmp.Diff(expect, stats); d != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", d)
	}
	if got := stats.Total(); got != 4 {
		t.Errorf("Total() = %d, want 4", got)
	}
}

func TestStatsString(t *testing.T) {
	cases := []struct {
		stats  Stats
		expect string
	}{
		{Stats{}, "0 adds. 0 removes. 0 replaces."},
		{Stats{Adds: 1, Removes: 2, Replaces: 1}, "1 add. 2 removes. 1 replace."},
		{Stats{Moves: 1}, "0 adds. 0 removes. 0 replaces. 1 move."},
		{Stats{Adds: 3, Moves: 2}, "3 adds. 0 removes. 0 replaces. 2 moves."},
	}
	for _, c := range cases {
		if got := c.stats.String(); got != c.expect {
			t.Errorf("String() = %q, want %q", got, c.expect)
		}
	}
}
