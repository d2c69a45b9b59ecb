package course_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aulanet/aulanet/internal/course"
	"github.com/aulanet/aulanet/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "course.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = dbh.Close() })
	return dbh
}

func seed(t *testing.T, dbh *sql.DB) {
	t.Helper()
	stmts := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO students (id,display_name) VALUES ($1,$2)`, []any{"s1", "Ana Morales"}},
		{`INSERT INTO course_groups (id,name,created_at) VALUES ($1,$2,$3)`, []any{"g1", "Programación I", 1700000000}},
		{`INSERT INTO rubrics (id,group_id,name,weight_percent,created_at) VALUES ($1,$2,$3,$4,$5)`,
			[]any{"r2", "g1", "Proyecto", "60", 1700000002}},
		{`INSERT INTO rubrics (id,group_id,name,weight_percent,created_at) VALUES ($1,$2,$3,$4,$5)`,
			[]any{"r1", "g1", "Tareas", "40", 1700000001}},
		{`INSERT INTO evaluations (id,rubric_id,name,weight_percent,is_group_work,required_group_size,created_at)
		  VALUES ($1,$2,$3,$4,$5,$6,$7)`, []any{"e2", "r1", "Tarea 2", "50", 0, 0, 1700000004}},
		{`INSERT INTO evaluations (id,rubric_id,name,weight_percent,is_group_work,required_group_size,created_at)
		  VALUES ($1,$2,$3,$4,$5,$6,$7)`, []any{"e1", "r1", "Tarea 1", "50", 0, 0, 1700000003}},
		{`INSERT INTO evaluations (id,rubric_id,name,weight_percent,is_group_work,required_group_size,created_at)
		  VALUES ($1,$2,$3,$4,$5,$6,$7)`, []any{"e3", "r2", "Entrega", "100", 1, 3, 1700000005}},
		{`INSERT INTO work_groups (id,evaluation_id,created_at) VALUES ($1,$2,$3)`, []any{"wg1", "e3", 1700000006}},
		{`INSERT INTO work_group_members (work_group_id,student_id) VALUES ($1,$2)`, []any{"wg1", "s1"}},
		{`INSERT INTO work_group_members (work_group_id,student_id) VALUES ($1,$2)`, []any{"wg1", "s2"}},
		{`INSERT INTO grade_entries (evaluation_id,subject_key,score_percent,is_published,remarks,created_at)
		  VALUES ($1,$2,$3,$4,$5,$6)`, []any{"e1", "s1", "80.5", 1, "bien", 1700000007}},
	}
	for _, s := range stmts {
		if _, err := dbh.Exec(s.q, s.args...); err != nil {
			t.Fatalf("seed %q: %v", s.q, err)
		}
	}
}

func TestSQLStore_ListingsAreIDOrdered(t *testing.T) {
	dbh := openTestDB(t)
	seed(t, dbh)
	st := course.NewSQLStore(dbh, "sqlite")
	ctx := context.Background()

	rubrics, err := st.RubricsForGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("rubrics: %v", err)
	}
	if len(rubrics) != 2 || rubrics[0].ID != "r1" || rubrics[1].ID != "r2" {
		t.Fatalf("expected [r1 r2], got %+v", rubrics)
	}
	if rubrics[0].WeightPercent.String() != "40" {
		t.Fatalf("weight: got %s", rubrics[0].WeightPercent)
	}

	evals, err := st.EvaluationsForRubric(ctx, "r1")
	if err != nil {
		t.Fatalf("evaluations: %v", err)
	}
	if len(evals) != 2 || evals[0].ID != "e1" || evals[1].ID != "e2" {
		t.Fatalf("expected [e1 e2], got %+v", evals)
	}
}

func TestSQLStore_WorkGroupMembership(t *testing.T) {
	dbh := openTestDB(t)
	seed(t, dbh)
	st := course.NewSQLStore(dbh, "sqlite")
	ctx := context.Background()

	wg, err := st.WorkGroupFor(ctx, "e3", "s1")
	if err != nil {
		t.Fatalf("work-group: %v", err)
	}
	if wg.ID != "wg1" || len(wg.MemberIDs) != 2 {
		t.Fatalf("unexpected work-group: %+v", wg)
	}

	_, err = st.WorkGroupFor(ctx, "e3", "s9")
	if !errors.Is(err, course.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for ungrouped student, got %v", err)
	}
}

func TestSQLStore_GradeEntryLookup(t *testing.T) {
	dbh := openTestDB(t)
	seed(t, dbh)
	st := course.NewSQLStore(dbh, "sqlite")
	ctx := context.Background()

	e, err := st.GradeEntry(ctx, "e1", "s1")
	if err != nil {
		t.Fatalf("entry: %v", err)
	}
	if e.ScorePercent.String() != "80.5" || !e.IsPublished || e.Remarks != "bien" {
		t.Fatalf("unexpected entry: %+v", e)
	}

	if _, err := st.GradeEntry(ctx, "e2", "s1"); !errors.Is(err, course.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLStore_DuplicateGradeEntryDetected(t *testing.T) {
	dbh := openTestDB(t)
	seed(t, dbh)
	if _, err := dbh.Exec(
		`INSERT INTO grade_entries (evaluation_id,subject_key,score_percent,is_published,created_at)
		 VALUES ('e1','s1','99',1,1700000008)`); err != nil {
		t.Fatalf("seed duplicate: %v", err)
	}

	st := course.NewSQLStore(dbh, "sqlite")
	_, err := st.GradeEntry(context.Background(), "e1", "s1")
	if !errors.Is(err, course.ErrDuplicateGradeEntry) {
		t.Fatalf("expected ErrDuplicateGradeEntry, got %v", err)
	}
}

func TestSQLStore_NotFoundSentinels(t *testing.T) {
	dbh := openTestDB(t)
	seed(t, dbh)
	st := course.NewSQLStore(dbh, "sqlite")
	ctx := context.Background()

	if _, err := st.Group(ctx, "nope"); !errors.Is(err, course.ErrNotFound) {
		t.Fatalf("group: expected ErrNotFound, got %v", err)
	}
	if _, err := st.StudentName(ctx, "nope"); !errors.Is(err, course.ErrNotFound) {
		t.Fatalf("student: expected ErrNotFound, got %v", err)
	}
	if name, err := st.StudentName(ctx, "s1"); err != nil || name != "Ana Morales" {
		t.Fatalf("student name: %q %v", name, err)
	}
}
