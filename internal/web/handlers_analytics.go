package web

import (
	"net/http"

	"github.com/akorchagin/partnerpulse/internal/calendar"
	"github.com/akorchagin/partnerpulse/internal/leaderboard"
	"github.com/akorchagin/partnerpulse/internal/period"
)

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePeriod(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "unknown period")
		return
	}

	snapshot := s.generator.NetworkSnapshot(p)
	respondJSON(w, http.StatusOK, map[string]any{
		"period":    p,
		"range":     formatRange(period.Resolve(p, s.now())),
		"analytics": snapshot,
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePeriod(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "unknown period")
		return
	}

	q := r.URL.Query()

	column := leaderboard.ColumnLeadsAdded
	if raw := q.Get("sort"); raw != "" {
		column, ok = leaderboard.ParseColumn(raw)
		if !ok {
			errorJSON(w, http.StatusBadRequest, "unknown sort column")
			return
		}
	}
	dir := leaderboard.Desc
	if q.Get("dir") == string(leaderboard.Asc) {
		dir = leaderboard.Asc
	}

	filters := leaderboard.Filters{
		Query:         q.Get("q"),
		OnlineOnly:    q.Get("online") == "true",
		ActiveLast7:   q.Get("active7") == "true",
		InactiveLast7: q.Get("inactive7") == "true",
	}

	partners := s.generator.NetworkSnapshot(p).Partners
	rows := leaderboard.Sort(leaderboard.Filter(partners, filters), column, dir)

	respondJSON(w, http.StatusOK, map[string]any{
		"period":   p,
		"partners": rows,
		"total":    len(rows),
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePeriod(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "unknown period")
		return
	}

	now := s.now()
	rng := period.Resolve(p, now)

	// The month grid carries the current week as a nested highlight.
	var highlight *period.Range
	if p == period.Month {
		week := period.Resolve(period.Week, now)
		highlight = &week
	}

	series := s.generator.NetworkSnapshot(p).ActivityTimeseries
	entries := calendar.BuildGrid(p, rng, series, highlight, now)

	mondayOffset := 0
	if p != period.AllTime {
		mondayOffset = period.MondayIndex(rng.Start)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"period":       p,
		"caption":      calendar.Caption(p, rng, now),
		"mondayOffset": mondayOffset,
		"entries":      entries,
	})
}
