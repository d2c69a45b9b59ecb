package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authmw "github.com/aulanet/aulanet/internal/auth/middleware"
	"github.com/aulanet/aulanet/internal/course"
	"github.com/aulanet/aulanet/internal/grades"
)

// GET /groups/{groupID}/report — the caller's own consolidated report.
func GetOwnReportHandler(agg *grades.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := strings.TrimSpace(chi.URLParam(r, "groupID"))
		studentID := authmw.SubjectFromContext(r.Context())
		if groupID == "" || studentID == "" {
			http.Error(w, "group and student required", http.StatusBadRequest)
			return
		}
		serveReport(w, r, agg, studentID, groupID)
	}
}

// GET /groups/{groupID}/students/{studentID}/report — staff view.
func GetStudentReportHandler(agg *grades.Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupID := strings.TrimSpace(chi.URLParam(r, "groupID"))
		studentID := strings.TrimSpace(chi.URLParam(r, "studentID"))
		if groupID == "" || studentID == "" {
			http.Error(w, "group and student required", http.StatusBadRequest)
			return
		}
		serveReport(w, r, agg, studentID, groupID)
	}
}

func serveReport(w http.ResponseWriter, r *http.Request, agg *grades.Aggregator, studentID, groupID string) {
	rep, err := agg.BuildReport(r.Context(), studentID, groupID)
	if err != nil {
		http.Error(w, "report: "+err.Error(), statusFor(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rep)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, course.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, course.ErrDuplicateGradeEntry):
		// Data-integrity fault: surfaced, never guessed around.
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
