// Package model defines the term trees, matches and mutation records shared by
// the rewriting engine and the mutation testing workflow.
package model

import (
	"fmt"
	"strings"
)

// Term is a node of the language-agnostic tree used for matching and rewriting.
//
// The set of implementations is closed: *Literal, *Variable, *TermSet and *Derived.
// Terms are immutable once constructed.
type Term interface {
	fmt.Stringer
	isTerm()
}

// Literal is a concrete named node. A Literal without children is a leaf.
type Literal struct {
	name     string
	children []Term
}

// NewLiteral builds a Literal. The children slice is copied.
func NewLiteral(name string, children ...Term) *Literal {
	return &Literal{name: name, children: append([]Term(nil), children...)}
}

func (*Literal) isTerm() {}

// Name returns the node name.
func (l *Literal) Name() string {
	return l.name
}

// Len returns the number of children.
func (l *Literal) Len() int {
	return len(l.children)
}

// Child returns the i-th child.
func (l *Literal) Child(i int) Term {
	return l.children[i]
}

// Children returns a copy of the ordered children.
func (l *Literal) Children() []Term {
	return append([]Term(nil), l.children...)
}

// IsLeaf reports whether the literal has no children.
func (l *Literal) IsLeaf() bool {
	return len(l.children) == 0
}

func (l *Literal) String() string {
	if l.IsLeaf() {
		return l.name
	}

	return l.name + "(" + joinTerms(l.children) + ")"
}

// Condition is a side-condition a Variable places on the term it binds.
type Condition func(Term) bool

// Variable is a named placeholder in a pattern or replacement.
type Variable struct {
	name      string
	condition Condition
	greedy    bool
}

// VariableOption configures a Variable.
type VariableOption func(*Variable)

// WithCondition attaches a side-condition to a Variable.
func WithCondition(condition Condition) VariableOption {
	return func(v *Variable) {
		v.condition = condition
	}
}

// Greedy marks a Variable as capturing a whole run of sibling terms.
func Greedy() VariableOption {
	return func(v *Variable) {
		v.greedy = true
	}
}

// NewVariable builds a Variable.
func NewVariable(name string, options ...VariableOption) *Variable {
	v := &Variable{name: name}
	for _, option := range options {
		option(v)
	}

	return v
}

func (*Variable) isTerm() {}

// Name returns the binding name.
func (v *Variable) Name() string {
	return v.name
}

// IsGreedy reports whether the variable captures a sequence of siblings.
func (v *Variable) IsGreedy() bool {
	return v.greedy
}

// Condition returns the side-condition, nil when unconstrained.
func (v *Variable) Condition() Condition {
	return v.condition
}

// Accepts reports whether term satisfies the variable's condition.
func (v *Variable) Accepts(term Term) bool {
	return v.condition == nil || v.condition(term)
}

func (v *Variable) String() string {
	name := strings.ToUpper(v.name)
	if v.greedy {
		name += "_"
	}

	return name
}

// TermSet is an ordered set of alternatives. In a pattern it matches when any
// alternative matches; in a replacement it yields one result per alternative.
type TermSet struct {
	terms []Term
}

// NewTermSet builds a TermSet. The slice is copied.
func NewTermSet(terms ...Term) *TermSet {
	return &TermSet{terms: append([]Term(nil), terms...)}
}

func (*TermSet) isTerm() {}

// Len returns the number of alternatives.
func (s *TermSet) Len() int {
	return len(s.terms)
}

// Term returns the i-th alternative.
func (s *TermSet) Term(i int) Term {
	return s.terms[i]
}

// Terms returns a copy of the alternatives in declared order.
func (s *TermSet) Terms() []Term {
	return append([]Term(nil), s.terms...)
}

func (s *TermSet) String() string {
	return "either(" + joinTerms(s.terms) + ")"
}

// Derivation computes a replacement term from the terms bound to a Derived's base.
type Derivation func(terms []Term) (Term, error)

// Derived is a replacement-only term computed from previously bound variables.
type Derived struct {
	base       []string
	derivation Derivation
}

// NewDerived builds a Derived term. A nil derivation means identity, which is
// only defined over exactly one base name.
func NewDerived(derivation Derivation, base ...string) (*Derived, error) {
	if len(base) == 0 {
		return nil, fmt.Errorf("derived term needs at least one base variable")
	}

	if derivation == nil && len(base) != 1 {
		return nil, fmt.Errorf("identity derivation needs exactly one base variable, got %d", len(base))
	}

	return &Derived{base: append([]string(nil), base...), derivation: derivation}, nil
}

func (*Derived) isTerm() {}

// Base returns a copy of the base variable names.
func (d *Derived) Base() []string {
	return append([]string(nil), d.base...)
}

// Derive applies the derivation to the bound terms.
func (d *Derived) Derive(terms []Term) (Term, error) {
	if d.derivation != nil {
		return d.derivation(terms)
	}

	if len(terms) != 1 {
		return nil, &SubstitutionError{Name: d.base[0], Reason: fmt.Sprintf("identity derivation over %d terms", len(terms))}
	}

	return terms[0], nil
}

func (d *Derived) String() string {
	names := make([]string, 0, len(d.base))
	for _, name := range d.base {
		names = append(names, strings.ToUpper(name))
	}

	return "derive(" + strings.Join(names, ", ") + ")"
}

func joinTerms(terms []Term) string {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		parts = append(parts, term.String())
	}

	return strings.Join(parts, ", ")
}

// Equal reports structural equality. Variables compare by name and greediness,
// derived terms by their base names.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Literal:
		y, ok := b.(*Literal)
		if !ok || x.name != y.name || len(x.children) != len(y.children) {
			return false
		}

		for i := range x.children {
			if !Equal(x.children[i], y.children[i]) {
				return false
			}
		}

		return true
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.name == y.name && x.greedy == y.greedy
	case *TermSet:
		y, ok := b.(*TermSet)
		if !ok || len(x.terms) != len(y.terms) {
			return false
		}

		for i := range x.terms {
			if !Equal(x.terms[i], y.terms[i]) {
				return false
			}
		}

		return true
	case *Derived:
		y, ok := b.(*Derived)
		return ok && strings.Join(x.base, ",") == strings.Join(y.base, ",")
	}

	return a == nil && b == nil
}

// Size returns the number of nodes reachable through Literal children.
func Size(term Term) int {
	lit, ok := term.(*Literal)
	if !ok {
		return 1
	}

	size := 1
	for _, child := range lit.children {
		size += Size(child)
	}

	return size
}
