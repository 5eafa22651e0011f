package domain

import (
	m "gooze.dev/pkg/morph/internal/model"
)

// Match unifies pattern with candidate. On success the substitution binds
// every pattern variable and binds m.WholeMatch to candidate. A failed match is
// reported through the boolean, never as an error.
//
// A variable name that occurs more than once in a pattern must bind
// structurally equal terms at every occurrence.
func Match(pattern, candidate m.Term) (m.Substitution, bool) {
	if pattern == nil || candidate == nil {
		return nil, false
	}

	substitution := m.Substitution{}
	if !unify(pattern, candidate, substitution) {
		return nil, false
	}

	substitution[m.WholeMatch] = m.Bind(candidate)

	return substitution, true
}

func unify(pattern, candidate m.Term, substitution m.Substitution) bool {
	switch p := pattern.(type) {
	case *m.Literal:
		c, ok := candidate.(*m.Literal)
		if !ok || c.Name() != p.Name() {
			return false
		}

		return unifyChildren(p, c, substitution)
	case *m.Variable:
		if !p.Accepts(candidate) {
			return false
		}

		binding := m.Bind(candidate)
		binding.Greedy = p.IsGreedy()

		return bind(substitution, p.Name(), binding)
	case *m.TermSet:
		for _, alternative := range p.Terms() {
			trial := substitution.Clone()
			if unify(alternative, candidate, trial) {
				for name, binding := range trial {
					substitution[name] = binding
				}

				return true
			}
		}

		return false
	}

	// Derived terms only make sense on the replacement side.
	return false
}

func unifyChildren(pattern, candidate *m.Literal, substitution m.Substitution) bool {
	if greedy := soleGreedyChild(pattern); greedy != nil {
		if candidate.Len() == 0 {
			return false
		}

		children := candidate.Children()
		for _, child := range children {
			if !greedy.Accepts(child) {
				return false
			}
		}

		return bind(substitution, greedy.Name(), m.BindAll(children))
	}

	if pattern.Len() != candidate.Len() {
		return false
	}

	for i := range pattern.Len() {
		if !unify(pattern.Child(i), candidate.Child(i), substitution) {
			return false
		}
	}

	return true
}

// soleGreedyChild returns the greedy variable among the children of lit when
// there is exactly one.
func soleGreedyChild(lit *m.Literal) *m.Variable {
	var found *m.Variable

	for _, child := range lit.Children() {
		v, ok := child.(*m.Variable)
		if !ok || !v.IsGreedy() {
			continue
		}

		if found != nil {
			return nil
		}

		found = v
	}

	return found
}

func bind(substitution m.Substitution, name string, binding m.Binding) bool {
	if existing, ok := substitution[name]; ok {
		return existing.Equal(binding)
	}

	substitution[name] = binding

	return true
}
