// Package calendar builds the dense, gap-filled grid of daily activity
// entries backing the activity-calendar views.
package calendar

import (
	"fmt"
	"time"

	"github.com/akorchagin/partnerpulse/internal/analytics"
	"github.com/akorchagin/partnerpulse/internal/period"
)

// Entry is one cell of the activity calendar, rebuilt on every request.
type Entry struct {
	Key        string `json:"key"`
	LabelShort string `json:"labelShort"`
	LabelLong  string `json:"labelLong"`
	// DayNumber is the day of month for week/month grids, 0 for the
	// monthly all-time entries.
	DayNumber  int  `json:"dayNumber,omitempty"`
	Total      int  `json:"total"`
	Calls      int  `json:"calls"`
	Chats      int  `json:"chats"`
	Selections int  `json:"selections"`
	IsFuture   bool `json:"isFuture"`
	// InHighlightedRange marks membership in a secondary range, letting a
	// selected week nest visually inside the month grid.
	InHighlightedRange bool `json:"inHighlightedRange"`
}

// BuildGrid produces one entry per calendar day of the range (week/month),
// or one per month for all time.
//
// Day i of the range maps to series[i]; a missing index yields zero counts.
// Days strictly after "now" are future and always report zero counts even
// when the series holds non-zero placeholder data. That masking is a
// product rule, not a data-cleaning step: future actuals must never show.
func BuildGrid(p period.Period, r period.Range, series []analytics.ActivityPoint, highlight *period.Range, now time.Time) []Entry {
	if p == period.AllTime {
		return buildMonthlyEntries(series)
	}

	today := period.Normalize(now)
	entries := make([]Entry, 0, r.Days())
	idx := 0
	for cursor := r.Start; !cursor.After(r.End); cursor = cursor.AddDate(0, 0, 1) {
		isFuture := cursor.After(today)

		var calls, chats, selections int
		if !isFuture && idx < len(series) {
			calls = series[idx].Calls
			chats = series[idx].Chats
			selections = series[idx].Selections
		}

		entries = append(entries, Entry{
			Key:                cursor.Format("2006-01-02"),
			LabelShort:         cursor.Format("02.01"),
			LabelLong:          longLabel(cursor),
			DayNumber:          cursor.Day(),
			Total:              calls + chats + selections,
			Calls:              calls,
			Chats:              chats,
			Selections:         selections,
			IsFuture:           isFuture,
			InHighlightedRange: highlight != nil && highlight.Contains(cursor),
		})
		idx++
	}
	return entries
}

// buildMonthlyEntries renders the last 12 months of the all-time series.
// No future-masking and no day numbering apply at month granularity.
func buildMonthlyEntries(series []analytics.ActivityPoint) []Entry {
	if len(series) > 12 {
		series = series[len(series)-12:]
	}
	entries := make([]Entry, 0, len(series))
	for i, point := range series {
		entries = append(entries, Entry{
			Key:        fmt.Sprintf("month-%d", i),
			LabelShort: point.Date,
			LabelLong:  point.Date,
			Total:      point.Total(),
			Calls:      point.Calls,
			Chats:      point.Chats,
			Selections: point.Selections,
		})
	}
	return entries
}

// Tone classifies a day's activity for the traffic-light legend.
type Tone string

const (
	ToneNone   Tone = "none"   // 0 activities
	ToneLow    Tone = "low"    // 1-4 activities
	ToneActive Tone = "active" // 5+ activities
)

// EntryTone returns the traffic-light tier for an activity total.
func EntryTone(total int) Tone {
	switch {
	case total == 0:
		return ToneNone
	case total < 5:
		return ToneLow
	default:
		return ToneActive
	}
}

// Caption renders the grid heading: the selected week inside its month, the
// month itself, or the fixed all-time caption.
func Caption(p period.Period, r period.Range, now time.Time) string {
	switch p {
	case period.AllTime:
		return "Последние 12 месяцев"
	case period.Week:
		month := monthCaption(period.Resolve(period.Month, now).Start)
		return fmt.Sprintf("%s · неделя %s - %s", month, shortDate(r.Start), shortDate(r.End))
	default:
		return monthCaption(r.Start)
	}
}

var weekdayNames = [7]string{
	"понедельник", "вторник", "среда", "четверг", "пятница", "суббота", "воскресенье",
}

var monthNamesGenitive = [12]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

var monthNamesShort = [12]string{
	"янв", "февр", "мар", "апр", "мая", "июн",
	"июл", "авг", "сент", "окт", "нояб", "дек",
}

var monthNamesNominative = [12]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// longLabel formats a date the way the calendar tooltips spell it:
// "понедельник, 2 января".
func longLabel(t time.Time) string {
	return fmt.Sprintf("%s, %d %s",
		weekdayNames[period.MondayIndex(t)], t.Day(), monthNamesGenitive[t.Month()-1])
}

func shortDate(t time.Time) string {
	return fmt.Sprintf("%d %s", t.Day(), monthNamesShort[t.Month()-1])
}

func monthCaption(t time.Time) string {
	return fmt.Sprintf("%s %d г.", monthNamesNominative[t.Month()-1], t.Year())
}
