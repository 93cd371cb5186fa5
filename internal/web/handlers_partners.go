package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/akorchagin/partnerpulse/internal/analytics"
	"github.com/akorchagin/partnerpulse/internal/funnel"
	"github.com/akorchagin/partnerpulse/internal/leaderboard"
	"github.com/akorchagin/partnerpulse/internal/period"
	"github.com/akorchagin/partnerpulse/internal/profile"
)

func (s *Server) handlePartner(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePeriod(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "unknown period")
		return
	}

	id := chi.URLParam(r, "id")
	snapshot, ok := s.generator.PersonSnapshot(id, p)
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error": "partner not found",
			"id":    id,
		})
		return
	}

	sales := snapshot.SalesFunnel()
	body := map[string]any{
		"period":      p,
		"range":       formatRange(period.Resolve(p, s.now())),
		"analytics":   snapshot,
		"efficiency":  analytics.BuildEfficiency(snapshot.DynamicKPI, sales),
		"composition": analytics.Composition(snapshot.DynamicKPI),
		"funnelTotals": map[string]int{
			"sales":  sales.TotalCount(),
			"broker": brokerTotal(snapshot),
		},
		"funnelInsights": map[string]any{
			"columnShares": funnel.ColumnShares(sales),
			"averageLoad":  funnel.AverageColumnLoad(sales),
			"topStages":    funnel.TopStages(sales, 5),
		},
	}
	if snapshot.Person != nil {
		body["lastSeen"] = analytics.FormatLastSeen(snapshot.Person.LastSeenMinutesAgo)
	}
	respondJSON(w, http.StatusOK, body)
}

func brokerTotal(s analytics.Snapshot) int {
	for _, b := range s.Funnels {
		if b.ID == "broker" {
			return b.TotalCount()
		}
	}
	return 0
}

func (s *Server) handlePartnerProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snapshot, ok := s.generator.PersonSnapshot(id, period.Month)
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error": "partner not found",
			"id":    id,
		})
		return
	}

	now := s.now()
	totals := monthTotals(snapshot)

	respondJSON(w, http.StatusOK, map[string]any{
		"summary":         profile.Build(totals, now),
		"currentWeek":     profile.CurrentWeek(totals, now),
		"activeThreshold": profile.ActiveThreshold,
	})
}

// monthTotals flattens the month snapshot's activity series into the
// positional per-day totals the profile math works over.
func monthTotals(s analytics.Snapshot) []int {
	totals := make([]int, len(s.ActivityTimeseries))
	for i, point := range s.ActivityTimeseries {
		totals[i] = point.Total()
	}
	return totals
}

func (s *Server) handlePartnerReferrals(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePeriod(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "unknown period")
		return
	}

	id := chi.URLParam(r, "id")
	snapshot, ok := s.generator.PersonSnapshot(id, p)
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error": "partner not found",
			"id":    id,
		})
		return
	}

	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	// A partner's referral list is the rest of the network; their own row
	// never competes in their ranking.
	referrals := make([]analytics.PartnerRow, 0, len(snapshot.Partners))
	for _, row := range snapshot.Partners {
		if row.ID != id {
			referrals = append(referrals, row)
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"period":    p,
		"referrals": leaderboard.TopReferrals(referrals, limit),
	})
}
