package domain

import (
	m "gooze.dev/pkg/morph/internal/model"
)

// Substitute instantiates term with the bindings of substitution.
//
// Greedy bindings are spliced into the children of the enclosing literal.
// A greedy binding of more than one term cannot stand where a single term is
// required (the root, a TermSet alternative, a derivation result) and yields a
// *m.SubstitutionError, as does any unbound name.
func Substitute(term m.Term, substitution m.Substitution) (m.Term, error) {
	switch t := term.(type) {
	case *m.Literal:
		return substituteLiteral(t, substitution)
	case *m.Variable:
		binding, ok := substitution[t.Name()]
		if !ok {
			return nil, &m.SubstitutionError{Name: t.Name()}
		}

		if len(binding.Terms) != 1 {
			return nil, &m.SubstitutionError{Name: t.Name(), Reason: "sequence binding used as a single term"}
		}

		return binding.Terms[0], nil
	case *m.TermSet:
		alternatives := make([]m.Term, 0, t.Len())

		for _, alternative := range t.Terms() {
			substituted, err := Substitute(alternative, substitution)
			if err != nil {
				return nil, err
			}

			alternatives = append(alternatives, substituted)
		}

		return m.NewTermSet(alternatives...), nil
	case *m.Derived:
		var bound []m.Term

		for _, name := range t.Base() {
			binding, ok := substitution[name]
			if !ok {
				return nil, &m.SubstitutionError{Name: name}
			}

			bound = append(bound, binding.Terms...)
		}

		return t.Derive(bound)
	}

	return nil, &m.SubstitutionError{Name: "?", Reason: "unknown term"}
}

func substituteLiteral(lit *m.Literal, substitution m.Substitution) (m.Term, error) {
	children := make([]m.Term, 0, lit.Len())

	for _, child := range lit.Children() {
		if v, ok := child.(*m.Variable); ok {
			if binding, found := substitution[v.Name()]; found && binding.Greedy {
				children = append(children, binding.Terms...)
				continue
			}
		}

		substituted, err := Substitute(child, substitution)
		if err != nil {
			return nil, err
		}

		children = append(children, substituted)
	}

	return m.NewLiteral(lit.Name(), children...), nil
}
