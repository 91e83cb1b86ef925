// Package relation holds the three exam relations in memory and provides
// predicate lookups and ExamID joins over them.
//
// Relations are immutable once built. Lookups preserve load order, and
// joins are inner joins driven by the left relation's order, so a dangling
// ExamID present on one side only never produces a row.
package relation

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/examsched/pkg/core"
)

// Record is a row keyed by ExamID.
type Record interface {
	Key() core.ExamID
}

// Relation is an ordered, ExamID-indexed set of records.
type Relation[R Record] struct {
	name  string
	rows  []R
	index map[core.ExamID]int
}

// New builds a relation, rejecting empty or duplicate ExamIDs.
func New[R Record](name string, rows []R) (*Relation[R], error) {
	r := &Relation[R]{
		name:  name,
		rows:  make([]R, 0, len(rows)),
		index: make(map[core.ExamID]int, len(rows)),
	}
	for i, row := range rows {
		id := row.Key()
		if id == "" {
			return nil, &core.RecordError{Relation: name, Reason: fmt.Sprintf("row %d has an empty exam id", i+1)}
		}
		if _, dup := r.index[id]; dup {
			return nil, &core.RecordError{Relation: name, ID: id, Reason: "duplicate exam id"}
		}
		r.index[id] = len(r.rows)
		r.rows = append(r.rows, row)
	}
	return r, nil
}

// Name returns the relation name.
func (r *Relation[R]) Name() string { return r.name }

// Len returns the number of rows.
func (r *Relation[R]) Len() int { return len(r.rows) }

// Rows returns a copy of all rows in load order.
func (r *Relation[R]) Rows() []R {
	out := make([]R, len(r.rows))
	copy(out, r.rows)
	return out
}

// Get returns the row with the given ExamID.
func (r *Relation[R]) Get(id core.ExamID) (R, bool) {
	i, ok := r.index[id]
	if !ok {
		var zero R
		return zero, false
	}
	return r.rows[i], true
}

// Lookup returns the rows matching pred in load order.
func (r *Relation[R]) Lookup(pred func(R) bool) []R {
	var out []R
	for _, row := range r.rows {
		if pred(row) {
			out = append(out, row)
		}
	}
	return out
}

// Pair is one row of an ExamID join.
type Pair[A, B Record] struct {
	Left  A
	Right B
}

// Join pairs every row of a with the row of b sharing its ExamID.
// Rows without a partner on the other side are dropped.
func Join[A, B Record](a *Relation[A], b *Relation[B]) []Pair[A, B] {
	var out []Pair[A, B]
	for _, left := range a.rows {
		right, ok := b.Get(left.Key())
		if !ok {
			continue
		}
		out = append(out, Pair[A, B]{Left: left, Right: right})
	}
	return out
}

// JoinWhere is Join filtered by pred, evaluated on each pair.
func JoinWhere[A, B Record](a *Relation[A], b *Relation[B], pred func(A, B) bool) []Pair[A, B] {
	var out []Pair[A, B]
	for _, p := range Join(a, b) {
		if pred(p.Left, p.Right) {
			out = append(out, p)
		}
	}
	return out
}

// Equals matches records whose field equals v exactly.
func Equals[R any](field func(R) string, v string) func(R) bool {
	return func(r R) bool { return field(r) == v }
}

// HasPrefix matches records whose field starts with prefix.
func HasPrefix[R any](field func(R) string, prefix string) func(R) bool {
	return func(r R) bool { return strings.HasPrefix(field(r), prefix) }
}

// And matches records accepted by every predicate.
func And[R any](preds ...func(R) bool) func(R) bool {
	return func(r R) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}
