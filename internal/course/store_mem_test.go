package course_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/aulanet/aulanet/internal/course"
)

func TestMemoryStore_MatchesSQLSemantics(t *testing.T) {
	st := course.NewMemoryStore()
	ctx := context.Background()

	st.PutGroup(course.Group{ID: "g1", Name: "Bases de Datos"})
	st.PutRubric(course.Rubric{ID: "r2", GroupID: "g1", Name: "Proyecto", WeightPercent: decimal.NewFromInt(60)})
	st.PutRubric(course.Rubric{ID: "r1", GroupID: "g1", Name: "Tareas", WeightPercent: decimal.NewFromInt(40)})

	rubrics, err := st.RubricsForGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("rubrics: %v", err)
	}
	if len(rubrics) != 2 || rubrics[0].ID != "r1" {
		t.Fatalf("expected id order, got %+v", rubrics)
	}

	st.AddGradeEntry(course.GradeEntry{EvaluationID: "e1", SubjectKey: "s1", IsPublished: true})
	st.AddGradeEntry(course.GradeEntry{EvaluationID: "e1", SubjectKey: "s1"})
	if _, err := st.GradeEntry(ctx, "e1", "s1"); !errors.Is(err, course.ErrDuplicateGradeEntry) {
		t.Fatalf("expected ErrDuplicateGradeEntry, got %v", err)
	}
	if _, err := st.GradeEntry(ctx, "e2", "s1"); !errors.Is(err, course.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := st.Group(ctx, "nope"); !errors.Is(err, course.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
