package course

import (
	"context"
	"errors"
)

var (
	// ErrNotFound covers missing groups, rubrics, evaluations, students,
	// grade entries and work-group membership alike; callers that need to
	// distinguish "no entry" from "no group" check at the call they made.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateGradeEntry reports more than one grade entry for the same
	// (evaluation_id, subject_key). The external grading workflow promises
	// at most one; when that promise is broken the lookup fails instead of
	// picking a row.
	ErrDuplicateGradeEntry = errors.New("duplicate grade entry")
)

// Store is the read contract the grade engine consumes. All methods are
// pure reads; writes happen through external course/roster/grading
// workflows. Listing methods return stable id order so that a report built
// twice from unchanged data is byte-identical.
type Store interface {
	Group(ctx context.Context, groupID string) (Group, error)
	RubricsForGroup(ctx context.Context, groupID string) ([]Rubric, error)
	EvaluationsForRubric(ctx context.Context, rubricID string) ([]Evaluation, error)

	// WorkGroupFor returns the work-group the student belongs to for the
	// evaluation, or ErrNotFound when the student is not yet grouped —
	// normal state while staff are still organizing cohorts.
	WorkGroupFor(ctx context.Context, evaluationID, studentID string) (WorkGroup, error)

	// GradeEntry returns the single entry for (evaluationID, subjectKey),
	// ErrNotFound when none exists, ErrDuplicateGradeEntry when more than
	// one does.
	GradeEntry(ctx context.Context, evaluationID, subjectKey string) (GradeEntry, error)

	StudentName(ctx context.Context, studentID string) (string, error)
}
