package course

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Group(ctx context.Context, groupID string) (Group, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,name FROM course_groups WHERE id=$1`, groupID)
	var g Group
	if err := row.Scan(&g.ID, &g.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Group{}, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
		}
		return Group{}, err
	}
	return g, nil
}

func (s *SQLStore) RubricsForGroup(ctx context.Context, groupID string) ([]Rubric, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,group_id,name,weight_percent FROM rubrics WHERE group_id=$1 ORDER BY id`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rubric
	for rows.Next() {
		var r Rubric
		if err := rows.Scan(&r.ID, &r.GroupID, &r.Name, &r.WeightPercent); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) EvaluationsForRubric(ctx context.Context, rubricID string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,rubric_id,name,COALESCE(due_at,0),weight_percent,is_group_work,has_deliverable,required_group_size,spec_file_ref
		 FROM evaluations WHERE rubric_id=$1 ORDER BY id`, rubricID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Evaluation
	for rows.Next() {
		var e Evaluation
		if err := rows.Scan(&e.ID, &e.RubricID, &e.Name, &e.DueAt, &e.WeightPercent,
			&e.IsGroupWork, &e.HasDeliverable, &e.RequiredGroupSize, &e.SpecFileRef); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) WorkGroupFor(ctx context.Context, evaluationID, studentID string) (WorkGroup, error) {
	// At most one work-group per (evaluation, student) by convention; order
	// by id so a violated convention still resolves deterministically.
	row := s.db.QueryRowContext(ctx,
		`SELECT wg.id FROM work_groups wg
		 JOIN work_group_members m ON m.work_group_id = wg.id
		 WHERE wg.evaluation_id=$1 AND m.student_id=$2
		 ORDER BY wg.id LIMIT 1`, evaluationID, studentID)
	var id string
	if err := row.Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WorkGroup{}, fmt.Errorf("work-group for evaluation %s student %s: %w", evaluationID, studentID, ErrNotFound)
		}
		return WorkGroup{}, err
	}

	wg := WorkGroup{ID: id, EvaluationID: evaluationID}
	rows, err := s.db.QueryContext(ctx,
		`SELECT student_id FROM work_group_members WHERE work_group_id=$1 ORDER BY student_id`, id)
	if err != nil {
		return WorkGroup{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var sid string
		if err := rows.Scan(&sid); err != nil {
			return WorkGroup{}, err
		}
		wg.MemberIDs = append(wg.MemberIDs, sid)
	}
	return wg, rows.Err()
}

func (s *SQLStore) GradeEntry(ctx context.Context, evaluationID, subjectKey string) (GradeEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT evaluation_id,subject_key,score_percent,is_published,remarks,detail_file_ref
		 FROM grade_entries WHERE evaluation_id=$1 AND subject_key=$2`, evaluationID, subjectKey)
	if err != nil {
		return GradeEntry{}, err
	}
	defer rows.Close()

	var (
		entry GradeEntry
		n     int
	)
	for rows.Next() {
		var e GradeEntry
		if err := rows.Scan(&e.EvaluationID, &e.SubjectKey, &e.ScorePercent,
			&e.IsPublished, &e.Remarks, &e.DetailFileRef); err != nil {
			return GradeEntry{}, err
		}
		if n == 0 {
			entry = e
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return GradeEntry{}, err
	}
	switch {
	case n == 0:
		return GradeEntry{}, fmt.Errorf("grade entry %s/%s: %w", evaluationID, subjectKey, ErrNotFound)
	case n > 1:
		return GradeEntry{}, fmt.Errorf("grade entry %s/%s: %w", evaluationID, subjectKey, ErrDuplicateGradeEntry)
	}
	return entry, nil
}

func (s *SQLStore) StudentName(ctx context.Context, studentID string) (string, error) {
	row := s.db.QueryRowContext(ctx, `SELECT display_name FROM students WHERE id=$1`, studentID)
	var name string
	if err := row.Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("student %s: %w", studentID, ErrNotFound)
		}
		return "", err
	}
	return name, nil
}
