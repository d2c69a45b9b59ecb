package grades

import (
	"context"
	"errors"
	"fmt"

	"github.com/aulanet/aulanet/internal/course"
)

// SubjectKind says whose grade entry an evaluation resolves to.
type SubjectKind int

const (
	// SubjectUnassigned marks a group evaluation for which the student has
	// not been organized into a work-group yet. Normal state, not a fault:
	// the evaluation is reported without a score.
	SubjectUnassigned SubjectKind = iota
	SubjectIndividual
	SubjectWorkGroup
)

// SubjectKey is the ledger key an evaluation's grade is recorded under:
// the student's own id for individual work, the work-group id for group
// work, or unassigned. The zero value is unassigned on purpose.
type SubjectKey struct {
	Kind SubjectKind
	ID   string
}

func Individual(studentID string) SubjectKey {
	return SubjectKey{Kind: SubjectIndividual, ID: studentID}
}

func Grouped(workGroupID string) SubjectKey {
	return SubjectKey{Kind: SubjectWorkGroup, ID: workGroupID}
}

// WorkGroupSource is the slice of the course store the resolver needs.
type WorkGroupSource interface {
	WorkGroupFor(ctx context.Context, evaluationID, studentID string) (course.WorkGroup, error)
}

// Resolver maps (evaluation, student) to the subject key grades are
// ledgered under.
type Resolver struct {
	Groups WorkGroupSource
}

// Resolve fails only on malformed input; "not yet grouped" is a value.
func (r *Resolver) Resolve(ctx context.Context, ev course.Evaluation, studentID string) (SubjectKey, error) {
	if ev.ID == "" {
		return SubjectKey{}, errors.New("resolve subject: empty evaluation id")
	}
	if studentID == "" {
		return SubjectKey{}, errors.New("resolve subject: empty student id")
	}
	if !ev.IsGroupWork {
		return Individual(studentID), nil
	}
	wg, err := r.Groups.WorkGroupFor(ctx, ev.ID, studentID)
	if err != nil {
		if errors.Is(err, course.ErrNotFound) {
			return SubjectKey{Kind: SubjectUnassigned}, nil
		}
		return SubjectKey{}, fmt.Errorf("resolve subject for evaluation %s: %w", ev.ID, err)
	}
	return Grouped(wg.ID), nil
}
