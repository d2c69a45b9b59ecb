package course

import "github.com/shopspring/decimal"

// Group is one course offering (a semester section) whose grade
// configuration the engine reads. Creation and roster management happen in
// external workflows.
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Rubric is a weighted grading category within a group. Rubric weights for
// one group should sum to 100 but nothing enforces that at write time; the
// aggregator reports stored weights as-is.
type Rubric struct {
	ID            string          `json:"id"`
	GroupID       string          `json:"group_id"`
	Name          string          `json:"name"`
	WeightPercent decimal.Decimal `json:"weight_percent"`
}

type Evaluation struct {
	ID                string          `json:"id"`
	RubricID          string          `json:"rubric_id"`
	Name              string          `json:"name"`
	DueAt             int64           `json:"due_at,omitempty"` // unix seconds
	WeightPercent     decimal.Decimal `json:"weight_percent"`   // within its rubric
	IsGroupWork       bool            `json:"is_group_work"`
	HasDeliverable    bool            `json:"has_deliverable"`
	RequiredGroupSize int             `json:"required_group_size,omitempty"` // meaningful only for group work
	SpecFileRef       string          `json:"spec_file_ref,omitempty"`       // opaque blob key
}

// WorkGroup is a cohort of students sharing one grade for a group
// evaluation. A student belongs to at most one work-group per evaluation.
type WorkGroup struct {
	ID           string   `json:"id"`
	EvaluationID string   `json:"evaluation_id"`
	MemberIDs    []string `json:"member_ids"`
}

// GradeEntry is one recorded score for (evaluation, subject). SubjectKey is
// a student id for individual work or a work-group id for group work; the
// two id spaces never collide. At most one entry may exist per pair — the
// read path treats duplicates as a data-integrity fault.
type GradeEntry struct {
	EvaluationID  string          `json:"evaluation_id"`
	SubjectKey    string          `json:"subject_key"`
	ScorePercent  decimal.Decimal `json:"score_percent"` // in [0,100]
	IsPublished   bool            `json:"is_published"`
	Remarks       string          `json:"remarks,omitempty"`
	DetailFileRef string          `json:"detail_file_ref,omitempty"` // opaque blob key
}
