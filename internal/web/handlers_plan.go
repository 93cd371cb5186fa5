package web

import (
	"encoding/json"
	"net/http"

	"github.com/akorchagin/partnerpulse/internal/period"
	"github.com/akorchagin/partnerpulse/internal/plan"
)

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	p, ok := parsePeriod(r)
	if !ok {
		errorJSON(w, http.StatusBadRequest, "unknown period")
		return
	}
	ctx := r.Context()

	// Defaults scale with the current week's realized volume, so refresh
	// them before reading the targets.
	weekSnapshot, _ := s.generator.PersonSnapshot(s.generator.CurrentUserID(), period.Week)
	s.tracker.Sync(ctx, weekSnapshot.DynamicKPI.PlanFacts())

	snapshot, _ := s.generator.PersonSnapshot(s.generator.CurrentUserID(), p)
	facts := snapshot.DynamicKPI.PlanFacts()

	bucket := plan.BucketFor(string(p))
	targets := s.tracker.Targets()
	rows := plan.Rows(targets.Metrics(bucket), facts)

	respondJSON(w, http.StatusOK, map[string]any{
		"period":   p,
		"bucket":   bucket,
		"editable": s.tracker.Editable(),
		"targets":  targets,
		"rows":     rows,
		"overall":  plan.Overall(rows),
	})
}

func (s *Server) handlePlanCommit(w http.ResponseWriter, r *http.Request) {
	if !s.tracker.Editable() {
		errorJSON(w, http.StatusForbidden, "plan targets are read-only")
		return
	}

	var edited plan.Targets
	if err := json.NewDecoder(r.Body).Decode(&edited); err != nil {
		errorJSON(w, http.StatusBadRequest, "malformed plan targets")
		return
	}

	next := s.tracker.Commit(r.Context(), edited)
	respondJSON(w, http.StatusOK, map[string]any{
		"targets": next,
	})
}
