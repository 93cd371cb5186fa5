package calendar

import (
	"testing"
	"time"

	"github.com/akorchagin/partnerpulse/internal/analytics"
	"github.com/akorchagin/partnerpulse/internal/period"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestBuildGrid_FutureMaskingOverridesSeriesData(t *testing.T) {
	// Range spans today and tomorrow; tomorrow's slot holds non-zero
	// placeholder data that must never leak through.
	now := date(2025, time.June, 10)
	r := period.Range{Start: now, End: now.AddDate(0, 0, 1)}
	series := []analytics.ActivityPoint{
		{Calls: 2, Chats: 1, Selections: 0},
		{Calls: 1, Chats: 1, Selections: 1},
	}

	entries := BuildGrid(period.Week, r, series, nil, now)

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	today, tomorrow := entries[0], entries[1]

	if today.IsFuture {
		t.Error("today flagged as future")
	}
	if today.Total != 3 || today.Calls != 2 || today.Chats != 1 {
		t.Errorf("today = %+v, want total 3", today)
	}
	if !tomorrow.IsFuture {
		t.Error("tomorrow not flagged as future")
	}
	if tomorrow.Total != 0 || tomorrow.Calls != 0 || tomorrow.Chats != 0 || tomorrow.Selections != 0 {
		t.Errorf("tomorrow = %+v, want all zeros despite placeholder data", tomorrow)
	}
}

func TestBuildGrid_TotalInvariant(t *testing.T) {
	now := date(2025, time.June, 30)
	r := period.Resolve(period.Month, now)
	series := make([]analytics.ActivityPoint, 30)
	for i := range series {
		series[i] = analytics.ActivityPoint{Calls: i, Chats: i % 3, Selections: i % 5}
	}

	for _, e := range BuildGrid(period.Month, r, series, nil, now) {
		if e.Total != e.Calls+e.Chats+e.Selections {
			t.Errorf("entry %s: total %d != %d+%d+%d", e.Key, e.Total, e.Calls, e.Chats, e.Selections)
		}
		if e.IsFuture && e.Total != 0 {
			t.Errorf("future entry %s has total %d", e.Key, e.Total)
		}
	}
}

func TestBuildGrid_MissingSeriesIndexYieldsZeros(t *testing.T) {
	now := date(2025, time.June, 30)
	r := period.Resolve(period.Week, now)

	entries := BuildGrid(period.Week, r, []analytics.ActivityPoint{{Calls: 4}}, nil, now)

	if len(entries) != 7 {
		t.Fatalf("got %d entries, want 7", len(entries))
	}
	if entries[0].Calls != 4 {
		t.Errorf("first day calls = %d, want 4", entries[0].Calls)
	}
	for _, e := range entries[1:] {
		if e.Total != 0 {
			t.Errorf("unsupplied day %s total = %d, want 0", e.Key, e.Total)
		}
	}
}

func TestBuildGrid_EmptySeries(t *testing.T) {
	now := date(2025, time.June, 15)
	r := period.Resolve(period.Month, now)

	entries := BuildGrid(period.Month, r, nil, nil, now)
	if len(entries) != 30 {
		t.Fatalf("got %d entries, want 30 for June", len(entries))
	}
	for _, e := range entries {
		if e.Total != 0 {
			t.Errorf("entry %s total = %d, want 0", e.Key, e.Total)
		}
	}
}

func TestBuildGrid_HighlightRangeInclusive(t *testing.T) {
	now := date(2025, time.June, 30)
	r := period.Resolve(period.Month, now)
	week := period.Range{Start: date(2025, time.June, 9), End: date(2025, time.June, 15)}

	entries := BuildGrid(period.Month, r, nil, &week, now)

	for _, e := range entries {
		in := e.Key >= "2025-06-09" && e.Key <= "2025-06-15"
		if e.InHighlightedRange != in {
			t.Errorf("entry %s highlighted = %v, want %v", e.Key, e.InHighlightedRange, in)
		}
	}
}

func TestBuildGrid_AllTimeTakesLastTwelveMonths(t *testing.T) {
	series := make([]analytics.ActivityPoint, 18)
	for i := range series {
		series[i] = analytics.ActivityPoint{Date: "месяц", Calls: i + 1}
	}

	entries := BuildGrid(period.AllTime, period.Range{}, series, nil, date(2025, time.June, 1))

	if len(entries) != 12 {
		t.Fatalf("got %d entries, want 12", len(entries))
	}
	// The window keeps the most recent elements.
	if entries[0].Calls != 7 || entries[11].Calls != 18 {
		t.Errorf("window = calls %d..%d, want 7..18", entries[0].Calls, entries[11].Calls)
	}
	for _, e := range entries {
		if e.IsFuture {
			t.Errorf("all-time entry %s flagged as future", e.Key)
		}
		if e.DayNumber != 0 {
			t.Errorf("all-time entry %s has day number %d", e.Key, e.DayNumber)
		}
	}
}

func TestBuildGrid_AllTimeShortSeries(t *testing.T) {
	series := []analytics.ActivityPoint{{Date: "Май", Calls: 3}, {Date: "Июнь", Chats: 2}}
	entries := BuildGrid(period.AllTime, period.Range{}, series, nil, date(2025, time.June, 1))

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[1].LabelShort != "Июнь" || entries[1].Total != 2 {
		t.Errorf("second entry = %+v", entries[1])
	}
}

func TestBuildGrid_Labels(t *testing.T) {
	now := date(2025, time.June, 2) // Monday
	r := period.Range{Start: now, End: now}

	entries := BuildGrid(period.Week, r, nil, nil, now)
	e := entries[0]

	if e.Key != "2025-06-02" {
		t.Errorf("key = %s", e.Key)
	}
	if e.LabelShort != "02.06" {
		t.Errorf("labelShort = %s, want 02.06", e.LabelShort)
	}
	if e.LabelLong != "понедельник, 2 июня" {
		t.Errorf("labelLong = %s", e.LabelLong)
	}
	if e.DayNumber != 2 {
		t.Errorf("dayNumber = %d, want 2", e.DayNumber)
	}
}

func TestEntryTone(t *testing.T) {
	tests := []struct {
		total int
		want  Tone
	}{
		{0, ToneNone},
		{1, ToneLow},
		{4, ToneLow},
		{5, ToneActive},
		{42, ToneActive},
	}
	for _, tt := range tests {
		if got := EntryTone(tt.total); got != tt.want {
			t.Errorf("EntryTone(%d) = %s, want %s", tt.total, got, tt.want)
		}
	}
}

func TestCaption(t *testing.T) {
	now := date(2025, time.June, 12)
	month := period.Resolve(period.Month, now)
	week := period.Resolve(period.Week, now)

	if got := Caption(period.Month, month, now); got != "Июнь 2025 г." {
		t.Errorf("month caption = %q", got)
	}
	if got := Caption(period.AllTime, month, now); got != "Последние 12 месяцев" {
		t.Errorf("all-time caption = %q", got)
	}
	want := "Июнь 2025 г. · неделя 6 июн - 12 июн"
	if got := Caption(period.Week, week, now); got != want {
		t.Errorf("week caption = %q, want %q", got, want)
	}
}
