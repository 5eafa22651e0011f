package domain

import (
	"iter"
	"slices"

	m "gooze.dev/pkg/morph/internal/model"
)

// Traverser walks a term tree in pre-order, one position per call to Next.
// Only literal children are descended into; variables, term sets and derived
// terms are visited as leaves.
type Traverser struct {
	pending []m.Positioned
}

// NewTraverser returns a cursor positioned before the root of tree.
func NewTraverser(tree m.Term) *Traverser {
	if tree == nil {
		return &Traverser{}
	}

	return &Traverser{pending: []m.Positioned{{Term: tree, Path: m.TermPath{}}}}
}

// Next returns the next position, or false once the tree is exhausted.
func (t *Traverser) Next() (m.Positioned, bool) {
	if len(t.pending) == 0 {
		return m.Positioned{}, false
	}

	last := len(t.pending) - 1
	current := t.pending[last]
	t.pending = t.pending[:last]

	if lit, ok := current.Term.(*m.Literal); ok {
		for i := lit.Len() - 1; i >= 0; i-- {
			t.pending = append(t.pending, m.Positioned{
				Term: lit.Child(i),
				Path: append(slices.Clone(current.Path), i),
			})
		}
	}

	return current, true
}

// Traverse exposes a Traverser as a range-over-func sequence. The walk stops
// as soon as the consumer stops ranging.
func Traverse(tree m.Term) iter.Seq[m.Positioned] {
	return func(yield func(m.Positioned) bool) {
		cursor := NewTraverser(tree)

		for {
			position, ok := cursor.Next()
			if !ok || !yield(position) {
				return
			}
		}
	}
}
