package web

import (
	"encoding/json"
	"net/http"

	"github.com/akorchagin/partnerpulse/internal/period"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// parsePeriod reads the period query parameter. The engine keeps unknown
// periods undefined, so this boundary rejects them; an absent parameter
// defaults to the week view.
func parsePeriod(r *http.Request) (period.Period, bool) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return period.Week, true
	}
	return period.Parse(raw)
}

func formatRange(r period.Range) map[string]string {
	return map[string]string{
		"start": r.Start.Format("2006-01-02"),
		"end":   r.End.Format("2006-01-02"),
	}
}
