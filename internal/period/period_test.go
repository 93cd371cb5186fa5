package period

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestResolve_Week(t *testing.T) {
	now := time.Date(2025, time.March, 12, 15, 42, 7, 0, time.Local)
	r := Resolve(Week, now)

	if want := date(2025, time.March, 6); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
	if want := date(2025, time.March, 12); !r.End.Equal(want) {
		t.Errorf("end = %v, want %v", r.End, want)
	}
	if r.Days() != 7 {
		t.Errorf("week range spans %d days, want 7", r.Days())
	}
}

func TestResolve_WeekCrossesMonthBoundary(t *testing.T) {
	now := date(2025, time.March, 2)
	r := Resolve(Week, now)

	if want := date(2025, time.February, 24); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
	if r.Days() != 7 {
		t.Errorf("week range spans %d days, want 7", r.Days())
	}
}

func TestResolve_MonthCoversWholeMonth(t *testing.T) {
	// Mid-month "now" still yields the full month.
	now := time.Date(2025, time.February, 10, 9, 0, 0, 0, time.Local)
	r := Resolve(Month, now)

	if want := date(2025, time.February, 1); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
	if want := date(2025, time.February, 28); !r.End.Equal(want) {
		t.Errorf("end = %v, want %v", r.End, want)
	}
}

func TestResolve_StartNeverAfterEnd(t *testing.T) {
	now := time.Date(2024, time.December, 31, 23, 59, 59, 0, time.Local)
	for _, p := range []Period{Week, Month, AllTime} {
		r := Resolve(p, now)
		if r.Start.After(r.End) {
			t.Errorf("%s: start %v after end %v", p, r.Start, r.End)
		}
	}
}

func TestResolve_AllTimeAnchorsToCurrentMonth(t *testing.T) {
	now := date(2025, time.July, 20)
	r := Resolve(AllTime, now)

	if want := date(2025, time.July, 1); !r.Start.Equal(want) {
		t.Errorf("start = %v, want %v", r.Start, want)
	}
	if want := date(2025, time.July, 31); !r.End.Equal(want) {
		t.Errorf("end = %v, want %v", r.End, want)
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: date(2025, time.May, 5), End: date(2025, time.May, 11)}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"before", date(2025, time.May, 4), false},
		{"start inclusive", date(2025, time.May, 5), true},
		{"inside with clock time", time.Date(2025, time.May, 8, 18, 30, 0, 0, time.Local), true},
		{"end inclusive", date(2025, time.May, 11), true},
		{"after", date(2025, time.May, 12), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestMondayIndex(t *testing.T) {
	tests := []struct {
		day  time.Time
		want int
	}{
		{date(2025, time.March, 10), 0}, // Monday
		{date(2025, time.March, 12), 2}, // Wednesday
		{date(2025, time.March, 15), 5}, // Saturday
		{date(2025, time.March, 16), 6}, // Sunday
	}
	for _, tt := range tests {
		if got := MondayIndex(tt.day); got != tt.want {
			t.Errorf("MondayIndex(%v) = %d, want %d", tt.day, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	if p, ok := Parse("month"); !ok || p != Month {
		t.Errorf("Parse(month) = %v, %v", p, ok)
	}
	if _, ok := Parse("quarter"); ok {
		t.Error("Parse(quarter) accepted an unknown period")
	}
	if _, ok := Parse(""); ok {
		t.Error("Parse(empty) accepted an empty period")
	}
}

func TestRangeDaysAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// US clocks spring forward on March 9th 2025, making that day 23
	// hours long; the calendar day count must not shrink with it.
	now := time.Date(2025, time.March, 12, 10, 0, 0, 0, loc)

	if got := Resolve(Week, now).Days(); got != 7 {
		t.Errorf("week days across spring-forward = %d, want 7", got)
	}
	if got := Resolve(Month, now).Days(); got != 31 {
		t.Errorf("march days across spring-forward = %d, want 31", got)
	}

	// Fall back (November 2nd 2025, a 25-hour day).
	now = time.Date(2025, time.November, 5, 10, 0, 0, 0, loc)
	if got := Resolve(Week, now).Days(); got != 7 {
		t.Errorf("week days across fall-back = %d, want 7", got)
	}
	if got := Resolve(Month, now).Days(); got != 30 {
		t.Errorf("november days across fall-back = %d, want 30", got)
	}
}
