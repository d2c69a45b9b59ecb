package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aulanet/aulanet/internal/course"
)

type rubricWithEvaluations struct {
	course.Rubric
	Evaluations []course.Evaluation `json:"evaluations"`
}

// GET /groups/{groupID}/rubrics — the group's grading configuration:
// rubrics in id order, each with its evaluations in id order.
func ListRubricsHandler(store course.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := strings.TrimSpace(chi.URLParam(r, "groupID"))
		if groupID == "" {
			http.Error(w, "groupID required", http.StatusBadRequest)
			return
		}
		if _, err := store.Group(r.Context(), groupID); err != nil {
			http.Error(w, "group: "+err.Error(), statusFor(err))
			return
		}
		rubrics, err := store.RubricsForGroup(r.Context(), groupID)
		if err != nil {
			http.Error(w, "rubrics: "+err.Error(), http.StatusInternalServerError)
			return
		}
		out := make([]rubricWithEvaluations, 0, len(rubrics))
		for _, rb := range rubrics {
			evals, err := store.EvaluationsForRubric(r.Context(), rb.ID)
			if err != nil {
				http.Error(w, "evaluations: "+err.Error(), http.StatusInternalServerError)
				return
			}
			if evals == nil {
				evals = []course.Evaluation{}
			}
			out = append(out, rubricWithEvaluations{Rubric: rb, Evaluations: evals})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}
