package course

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is a seedable in-memory Store used by tests and offline
// demos. Semantics mirror SQLStore: id-ordered listings, duplicate grade
// entries reported as a fault.
type MemoryStore struct {
	mu         sync.RWMutex
	groups     map[string]Group
	rubrics    map[string]Rubric
	evals      map[string]Evaluation
	workGroups map[string]WorkGroup
	entries    []GradeEntry // slice, not map: duplicates must be representable
	students   map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		groups:     map[string]Group{},
		rubrics:    map[string]Rubric{},
		evals:      map[string]Evaluation{},
		workGroups: map[string]WorkGroup{},
		students:   map[string]string{},
	}
}

func (m *MemoryStore) PutGroup(g Group) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups[g.ID] = g
}

func (m *MemoryStore) PutRubric(r Rubric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rubrics[r.ID] = r
}

func (m *MemoryStore) PutEvaluation(e Evaluation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evals[e.ID] = e
}

func (m *MemoryStore) PutWorkGroup(wg WorkGroup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workGroups[wg.ID] = wg
}

// AddGradeEntry appends without deduplicating, so tests can stage the
// duplicate-entry fault.
func (m *MemoryStore) AddGradeEntry(e GradeEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
}

func (m *MemoryStore) PutStudent(id, displayName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.students[id] = displayName
}

func (m *MemoryStore) Group(_ context.Context, groupID string) (Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.groups[groupID]
	if !ok {
		return Group{}, fmt.Errorf("group %s: %w", groupID, ErrNotFound)
	}
	return g, nil
}

func (m *MemoryStore) RubricsForGroup(_ context.Context, groupID string) ([]Rubric, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Rubric
	for _, r := range m.rubrics {
		if r.GroupID == groupID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) EvaluationsForRubric(_ context.Context, rubricID string) ([]Evaluation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Evaluation
	for _, e := range m.evals {
		if e.RubricID == rubricID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemoryStore) WorkGroupFor(_ context.Context, evaluationID, studentID string) (WorkGroup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var candidates []WorkGroup
	for _, wg := range m.workGroups {
		if wg.EvaluationID != evaluationID {
			continue
		}
		for _, sid := range wg.MemberIDs {
			if sid == studentID {
				candidates = append(candidates, wg)
				break
			}
		}
	}
	if len(candidates) == 0 {
		return WorkGroup{}, fmt.Errorf("work-group for evaluation %s student %s: %w", evaluationID, studentID, ErrNotFound)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	wg := candidates[0]
	members := append([]string(nil), wg.MemberIDs...)
	sort.Strings(members)
	wg.MemberIDs = members
	return wg, nil
}

func (m *MemoryStore) GradeEntry(_ context.Context, evaluationID, subjectKey string) (GradeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var (
		entry GradeEntry
		n     int
	)
	for _, e := range m.entries {
		if e.EvaluationID == evaluationID && e.SubjectKey == subjectKey {
			if n == 0 {
				entry = e
			}
			n++
		}
	}
	switch {
	case n == 0:
		return GradeEntry{}, fmt.Errorf("grade entry %s/%s: %w", evaluationID, subjectKey, ErrNotFound)
	case n > 1:
		return GradeEntry{}, fmt.Errorf("grade entry %s/%s: %w", evaluationID, subjectKey, ErrDuplicateGradeEntry)
	}
	return entry, nil
}

func (m *MemoryStore) StudentName(_ context.Context, studentID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name, ok := m.students[studentID]
	if !ok {
		return "", fmt.Errorf("student %s: %w", studentID, ErrNotFound)
	}
	return name, nil
}
