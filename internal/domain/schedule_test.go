package domain

import (
	"testing"
	"time"
)

func TestBlockWeek(t *testing.T) {
	block := Block{Index: 1, Start: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), Weeks: 2}

	w := block.Week(1)
	if w.BlockIndex != 1 || w.Index != 1 {
		t.Errorf("got BlockIndex=%d Index=%d, want 1, 1", w.BlockIndex, w.Index)
	}
	want := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", w.Start, want)
	}
}

func TestWeekEnd(t *testing.T) {
	w := Week{Start: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)}
	want := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	if !w.End().Equal(want) {
		t.Errorf("End() = %v, want %v", w.End(), want)
	}
}

func TestWeekOverlaps(t *testing.T) {
	w := Week{Start: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)} // [Jan5, Jan12)

	cases := []struct {
		name        string
		start, end  time.Time
		wantOverlap bool
	}{
		{"fully inside", date(t, "2026-01-06"), date(t, "2026-01-07"), true},
		{"starts before, ends inside", date(t, "2026-01-01"), date(t, "2026-01-06"), true},
		{"starts exactly on boundary end", date(t, "2026-01-12"), date(t, "2026-01-13"), false},
		{"ends exactly on week start", date(t, "2026-01-01"), date(t, "2026-01-05"), true},
		{"entirely before", date(t, "2026-01-01"), date(t, "2026-01-02"), false},
		{"entirely after", date(t, "2026-01-20"), date(t, "2026-01-22"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := w.Overlaps(c.start, c.end); got != c.wantOverlap {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", c.start, c.end, got, c.wantOverlap)
			}
		})
	}
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("time.Parse(%q): %v", s, err)
	}
	return d
}
