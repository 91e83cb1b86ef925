package query

import (
	"slices"

	"github.com/leapstack-labs/examsched/internal/relation"
	"github.com/leapstack-labs/examsched/pkg/core"
)

// CollisionGroups returns every (date, start) slot shared by two or more
// exams, ordered by slot. Exams inside a group keep Time relation order.
func (e *Engine) CollisionGroups() []core.CollisionGroup {
	groups := make(map[slot]*core.CollisionGroup)
	var slots []slot

	for _, p := range relation.Join(e.store.Time, e.store.Courses) {
		key := slot{Date: p.Left.Date, Start: p.Left.Start}
		g, ok := groups[key]
		if !ok {
			g = &core.CollisionGroup{Date: key.Date, Start: key.Start}
			groups[key] = g
			slots = append(slots, key)
		}
		g.Exams = append(g.Exams, core.ExamRef{
			ExamID:  p.Left.ID,
			Course:  p.Right.Course,
			Section: p.Right.Section,
		})
	}

	slices.SortStableFunc(slots, compareSlots)

	var out []core.CollisionGroup
	for _, key := range slots {
		// the join is 1:1 on ExamID, so every exam in a group is distinct
		if g := groups[key]; len(g.Exams) >= 2 {
			out = append(out, *g)
		}
	}
	return out
}

// DetectConflicts returns the other courses sitting an exam in the same
// slot as any section of course. The query course is never listed. Names
// are ordered by slot, then alphabetically, first appearance winning.
func (e *Engine) DetectConflicts(course string) []string {
	seen := map[string]bool{course: true}
	var out []string

	for _, g := range e.CollisionGroups() {
		if !g.Has(course) {
			continue
		}
		for _, name := range g.Courses() {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}

	e.logger.Debug("detected conflicts", "course", course, "conflicts", len(out))
	return out
}
