package entity

import (
	"testing"
	"time"
)

func ts(hour, minute int) time.Time {
	return time.Date(2025, time.January, 6, hour, minute, 0, 0, time.UTC)
}

func TestTimeIntervalOverlaps(t *testing.T) {
	base := TimeInterval{Start: ts(10, 0), End: ts(12, 0)}

	cases := []struct {
		name  string
		other TimeInterval
		want  bool
	}{
		{"fully inside", TimeInterval{Start: ts(10, 30), End: ts(11, 30)}, true},
		{"partial left", TimeInterval{Start: ts(9, 0), End: ts(10, 30)}, true},
		{"partial right", TimeInterval{Start: ts(11, 30), End: ts(13, 0)}, true},
		{"touching at end", TimeInterval{Start: ts(12, 0), End: ts(13, 0)}, false},
		{"touching at start", TimeInterval{Start: ts(9, 0), End: ts(10, 0)}, false},
		{"disjoint", TimeInterval{Start: ts(14, 0), End: ts(15, 0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tc.other, got, tc.want)
			}
			// Overlap is symmetric.
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Errorf("reverse Overlaps(%v) = %v, want %v", base, got, tc.want)
			}
		})
	}
}

func TestTimeIntervalClip(t *testing.T) {
	bounds := TimeInterval{Start: ts(9, 0), End: ts(18, 0)}

	clipped, ok := (TimeInterval{Start: ts(8, 0), End: ts(10, 0)}).Clip(bounds)
	if !ok {
		t.Fatal("expected a remaining portion")
	}
	if !clipped.Start.Equal(ts(9, 0)) || !clipped.End.Equal(ts(10, 0)) {
		t.Errorf("unexpected clip result %v-%v", clipped.Start, clipped.End)
	}

	if _, ok := (TimeInterval{Start: ts(19, 0), End: ts(20, 0)}).Clip(bounds); ok {
		t.Error("interval outside bounds should clip to nothing")
	}

	// Touching the boundary leaves nothing, the range is half-open.
	if _, ok := (TimeInterval{Start: ts(18, 0), End: ts(20, 0)}).Clip(bounds); ok {
		t.Error("interval starting at bounds end should clip to nothing")
	}
}

func TestISOWeekday(t *testing.T) {
	cases := []struct {
		date time.Time
		want int
	}{
		{time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), 1},  // Monday
		{time.Date(2025, time.January, 11, 0, 0, 0, 0, time.UTC), 6}, // Saturday
		{time.Date(2025, time.January, 12, 0, 0, 0, 0, time.UTC), 7}, // Sunday
	}
	for _, tc := range cases {
		if got := ISOWeekday(tc.date); got != tc.want {
			t.Errorf("ISOWeekday(%v) = %d, want %d", tc.date, got, tc.want)
		}
	}
}

func TestWorkdayWindow(t *testing.T) {
	c := SearchConstraints{
		WorkStartMinutes: 9*60 + 30,
		WorkEndMinutes:   17 * 60,
		Location:         time.UTC,
	}

	w := c.WorkdayWindow(time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC))
	if !w.Start.Equal(ts(9, 30)) || !w.End.Equal(ts(17, 0)) {
		t.Errorf("unexpected workday window %v-%v", w.Start, w.End)
	}
	if w.Duration() != 7*time.Hour+30*time.Minute {
		t.Errorf("unexpected duration %v", w.Duration())
	}
}
