package grades

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aulanet/aulanet/internal/course"
)

var hundred = decimal.NewFromInt(100)

// displayPlaces is how far subtotals and the final grade are rounded for
// presentation. Intermediate arithmetic is never rounded.
const displayPlaces = 2

// Aggregator builds consolidated grade reports from the course read store.
// It never writes; concurrent builds for different (student, group) pairs
// are safe.
type Aggregator struct {
	store    course.Store
	resolver *Resolver
}

func NewAggregator(store course.Store) *Aggregator {
	return &Aggregator{store: store, resolver: &Resolver{Groups: store}}
}

// BuildReport computes the per-rubric subtotals and final weighted grade
// for one student in one group.
//
// Missing and unpublished grades contribute zero to every aggregate rather
// than being dropped from the denominator, so pending work can never
// inflate a percentage. Stored weights are used as given even when they do
// not sum to 100 — inconsistent configuration is an operator concern, not
// a computation fault. Any store failure, including a duplicate grade
// entry, aborts the whole build: a partial total would be a wrong total.
func (a *Aggregator) BuildReport(ctx context.Context, studentID, groupID string) (ConsolidatedReport, error) {
	if studentID == "" {
		return ConsolidatedReport{}, errors.New("build report: empty student id")
	}
	if groupID == "" {
		return ConsolidatedReport{}, errors.New("build report: empty group id")
	}

	name, err := a.store.StudentName(ctx, studentID)
	if err != nil {
		return ConsolidatedReport{}, err
	}
	if _, err := a.store.Group(ctx, groupID); err != nil {
		return ConsolidatedReport{}, err
	}

	rubrics, err := a.store.RubricsForGroup(ctx, groupID)
	if err != nil {
		return ConsolidatedReport{}, err
	}

	rep := ConsolidatedReport{
		StudentID:   studentID,
		StudentName: name,
		GroupID:     groupID,
		Rubrics:     make([]RubricReport, 0, len(rubrics)),
	}

	final := decimal.Zero
	for _, r := range rubrics {
		rr, subtotal, err := a.buildRubric(ctx, r, studentID)
		if err != nil {
			return ConsolidatedReport{}, err
		}
		rep.Rubrics = append(rep.Rubrics, rr)
		final = final.Add(subtotal.Mul(r.WeightPercent).Div(hundred))
	}
	rep.FinalGrade = final.Round(displayPlaces)
	return rep, nil
}

func (a *Aggregator) buildRubric(ctx context.Context, r course.Rubric, studentID string) (RubricReport, decimal.Decimal, error) {
	evals, err := a.store.EvaluationsForRubric(ctx, r.ID)
	if err != nil {
		return RubricReport{}, decimal.Zero, err
	}

	rr := RubricReport{
		RubricID:      r.ID,
		Name:          r.Name,
		WeightPercent: r.WeightPercent,
		Evaluations:   make([]EvaluationReport, 0, len(evals)),
	}

	subtotal := decimal.Zero
	for _, ev := range evals {
		er, err := a.buildEvaluation(ctx, ev, studentID)
		if err != nil {
			return RubricReport{}, decimal.Zero, err
		}
		if er.ScorePercent != nil {
			subtotal = subtotal.Add(er.ScorePercent.Mul(ev.WeightPercent).Div(hundred))
		}
		rr.Evaluations = append(rr.Evaluations, er)
	}
	rr.Subtotal = subtotal.Round(displayPlaces)
	return rr, subtotal, nil
}

func (a *Aggregator) buildEvaluation(ctx context.Context, ev course.Evaluation, studentID string) (EvaluationReport, error) {
	er := EvaluationReport{
		EvaluationID:  ev.ID,
		Name:          ev.Name,
		DueAt:         ev.DueAt,
		WeightPercent: ev.WeightPercent,
		IsGroupWork:   ev.IsGroupWork,
	}

	key, err := a.resolver.Resolve(ctx, ev, studentID)
	if err != nil {
		return EvaluationReport{}, err
	}
	if key.Kind == SubjectUnassigned {
		return er, nil
	}

	entry, err := a.store.GradeEntry(ctx, ev.ID, key.ID)
	if err != nil {
		// No entry yet is normal; anything else — duplicates included —
		// kills the build.
		if errors.Is(err, course.ErrNotFound) {
			return er, nil
		}
		return EvaluationReport{}, fmt.Errorf("evaluation %s: %w", ev.ID, err)
	}
	if !entry.IsPublished {
		return er, nil
	}

	score := entry.ScorePercent
	er.ScorePercent = &score
	er.IsPublished = true
	er.Remarks = entry.Remarks
	er.DetailFileRef = entry.DetailFileRef
	return er, nil
}
