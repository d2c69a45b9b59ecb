package grades

import "github.com/shopspring/decimal"

// ConsolidatedReport is the student-facing grade report for one (student,
// group) pair. Built fresh on every request, never persisted. Subtotals
// and the final grade are display values, rounded half-up to 2 places;
// per-evaluation scores are the stored values, unrounded.
type ConsolidatedReport struct {
	StudentID   string          `json:"student_id"`
	StudentName string          `json:"student_name"`
	GroupID     string          `json:"group_id"`
	FinalGrade  decimal.Decimal `json:"final_grade"`
	Rubrics     []RubricReport  `json:"rubrics"`
}

type RubricReport struct {
	RubricID      string             `json:"rubric_id"`
	Name          string             `json:"name"`
	WeightPercent decimal.Decimal    `json:"weight_percent"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Evaluations   []EvaluationReport `json:"evaluations"`
}

// EvaluationReport carries a nil ScorePercent when no grade exists or the
// grade is unpublished — the two states are indistinguishable to students
// by design, so nothing leaks before the instructor releases it.
type EvaluationReport struct {
	EvaluationID  string           `json:"evaluation_id"`
	Name          string           `json:"name"`
	DueAt         int64            `json:"due_at,omitempty"`
	WeightPercent decimal.Decimal  `json:"weight_percent"`
	IsGroupWork   bool             `json:"is_group_work"`
	ScorePercent  *decimal.Decimal `json:"score_percent"`
	IsPublished   bool             `json:"is_published"`
	Remarks       string           `json:"remarks,omitempty"`
	DetailFileRef string           `json:"detail_file_ref,omitempty"`
}
