// Package profile derives daily-activity habits for the current month:
// running average, personal best, the consecutive-day streak and per-weekday
// patterns.
package profile

import (
	"time"

	"github.com/akorchagin/partnerpulse/internal/period"
)

// ActiveThreshold is the daily activity total that counts a day as active
// for the streak and the weekly tracker.
const ActiveThreshold = 5

// Summary is the month-to-date activity profile. Only elapsed days
// participate; days after "now" are excluded entirely, not zero-filled.
type Summary struct {
	Average float64 `json:"average"`
	Best    int     `json:"best"`
	Streak  int     `json:"streak"`

	// PerWeekday holds the average activity for each weekday this month,
	// Monday first. Weekdays that have not occurred yet stay 0.
	PerWeekday [7]float64 `json:"perWeekday"`

	// LeaderWeekday is the Monday-first index of the weekday with the
	// strict maximum positive average, or -1 when no weekday leads.
	LeaderWeekday int `json:"leaderWeekday"`
}

// Build computes the profile over the current month's daily totals.
// monthTotals is positionally indexed: element i is day i+1 of the month
// containing now. Entries beyond today are ignored.
func Build(monthTotals []int, now time.Time) Summary {
	elapsed := elapsedTotals(monthTotals, now)
	s := Summary{LeaderWeekday: -1}

	if len(elapsed) == 0 {
		return s
	}

	sum := 0
	for _, v := range elapsed {
		sum += v
		if v > s.Best {
			s.Best = v
		}
	}
	s.Average = float64(sum) / float64(len(elapsed))

	// Walk backward from the most recent elapsed day; the first
	// sub-threshold day ends the streak, no look-back past a gap.
	for i := len(elapsed) - 1; i >= 0; i-- {
		if elapsed[i] < ActiveThreshold {
			break
		}
		s.Streak++
	}

	var totals, counts [7]int
	year, month := now.Year(), now.Month()
	for i, v := range elapsed {
		day := time.Date(year, month, i+1, 0, 0, 0, 0, now.Location())
		dow := period.MondayIndex(day)
		totals[dow] += v
		counts[dow]++
	}
	for i := range s.PerWeekday {
		if counts[i] > 0 {
			s.PerWeekday[i] = float64(totals[i]) / float64(counts[i])
		}
	}

	best := 0.0
	leader := -1
	ties := 0
	for i, avg := range s.PerWeekday {
		if avg > best {
			best = avg
			leader = i
			ties = 1
		} else if avg == best && avg > 0 {
			ties++
		}
	}
	if leader >= 0 && best > 0 && ties == 1 {
		s.LeaderWeekday = leader
	}
	return s
}

// DayStatus classifies one day of the weekly tracker.
type DayStatus string

const (
	StatusActive   DayStatus = "active"
	StatusInactive DayStatus = "inactive"
	StatusFuture   DayStatus = "future"
)

// WeekDay is one cell of the current-week tracker.
type WeekDay struct {
	Date    time.Time `json:"date"`
	Weekday int       `json:"weekday"` // Monday-first index
	Total   int       `json:"total"`
	Status  DayStatus `json:"status"`
}

// CurrentWeek classifies the Monday–Sunday window containing now. Future
// days report zero totals; days outside the current month count as 0
// activity. Independent of the streak: this only renders the current week.
func CurrentWeek(monthTotals []int, now time.Time) [7]WeekDay {
	today := period.Normalize(now)
	monday := today.AddDate(0, 0, -period.MondayIndex(today))
	elapsed := elapsedTotals(monthTotals, now)

	var week [7]WeekDay
	for i := range week {
		d := monday.AddDate(0, 0, i)
		total := 0
		if d.Month() == now.Month() && d.Year() == now.Year() {
			if idx := d.Day() - 1; idx >= 0 && idx < len(elapsed) {
				total = elapsed[idx]
			}
		}

		status := StatusInactive
		switch {
		case d.After(today):
			status = StatusFuture
			total = 0
		case total >= ActiveThreshold:
			status = StatusActive
		}
		week[i] = WeekDay{Date: d, Weekday: i, Total: total, Status: status}
	}
	return week
}

// elapsedTotals trims the month series to the days that have already
// happened, including today.
func elapsedTotals(monthTotals []int, now time.Time) []int {
	n := now.Day()
	if n > len(monthTotals) {
		n = len(monthTotals)
	}
	if n < 0 {
		n = 0
	}
	return monthTotals[:n]
}
