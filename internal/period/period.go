// Package period maps the coarse time-window selector used across the
// analytics screens (week / month / all time) to concrete calendar ranges.
package period

import "time"

// Period selects the time window for every derived view.
type Period string

const (
	Week    Period = "week"
	Month   Period = "month"
	AllTime Period = "allTime"
)

// Parse validates a period value coming from an untrusted boundary (query
// params, CLI flags). Inside the engine an invalid Period is a programming
// error and stays unchecked.
func Parse(s string) (Period, bool) {
	switch Period(s) {
	case Week, Month, AllTime:
		return Period(s), true
	}
	return "", false
}

// Range is an inclusive calendar date range, both ends normalized to
// midnight local time. Start never exceeds End.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t (normalized) falls within the range, inclusive
// on both ends.
func (r Range) Contains(t time.Time) bool {
	d := Normalize(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar days the range spans, inclusive.
// Counted by date, not by elapsed hours: a DST transition makes a day 23 or
// 25 hours long without changing how many calendar days the range covers.
func (r Range) Days() int {
	days := 0
	for cursor := r.Start; !cursor.After(r.End); cursor = cursor.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// Normalize truncates t to midnight in its own location.
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Resolve maps a period to its calendar range, anchored to now.
//
// Week is the 7-day window ending today (no ISO week alignment). Month is
// the full calendar month containing now, however far into it now is.
// AllTime has no fixed start; the current month is returned as the anchor
// range for callers that need a concrete range, such as calendar captions.
func Resolve(p Period, now time.Time) Range {
	today := Normalize(now)
	switch p {
	case Week:
		return Range{Start: today.AddDate(0, 0, -6), End: today}
	default:
		// Month, and the AllTime anchor.
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 1, -1)
		return Range{Start: first, End: last}
	}
}

// MondayIndex returns the day-of-week column for grid layout, Monday = 0
// through Sunday = 6. Used only for leading empty-cell padding, never for
// data computation.
func MondayIndex(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// Label is the human period caption shown next to derived views.
func Label(p Period) string {
	switch p {
	case Month:
		return "Месяц"
	case AllTime:
		return "За всё время"
	default:
		return "Неделя"
	}
}
