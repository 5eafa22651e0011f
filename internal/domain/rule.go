package domain

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	m "gooze.dev/pkg/morph/internal/model"
)

// ErrInvalidPattern is returned by NewRule for patterns that can never match.
var ErrInvalidPattern = errors.New("invalid pattern")

// RewriteObserver is told about every rewrite a Rule performs.
type RewriteObserver func(original, rewritten m.Term)

// Rule pairs a pattern with the replacement template instantiated for each match.
type Rule struct {
	pattern     m.Term
	replacement m.Term
}

// NewRule validates and builds a Rule. Patterns may not contain derived terms
// or bind the reserved m.WholeMatch name.
func NewRule(pattern, replacement m.Term) (*Rule, error) {
	if pattern == nil || replacement == nil {
		return nil, fmt.Errorf("%w: pattern and replacement are required", ErrInvalidPattern)
	}

	if err := validatePattern(pattern); err != nil {
		return nil, err
	}

	return &Rule{pattern: pattern, replacement: replacement}, nil
}

func validatePattern(pattern m.Term) error {
	switch p := pattern.(type) {
	case *m.Derived:
		return fmt.Errorf("%w: derived term %s cannot be matched", ErrInvalidPattern, p)
	case *m.Variable:
		if p.Name() == m.WholeMatch {
			return fmt.Errorf("%w: variable name %q is reserved", ErrInvalidPattern, m.WholeMatch)
		}
	case *m.Literal:
		for _, child := range p.Children() {
			if err := validatePattern(child); err != nil {
				return err
			}
		}
	case *m.TermSet:
		for _, alternative := range p.Terms() {
			if err := validatePattern(alternative); err != nil {
				return err
			}
		}
	}

	return nil
}

// Pattern returns the rule's pattern.
func (r *Rule) Pattern() m.Term {
	return r.pattern
}

// Replacement returns the rule's replacement template.
func (r *Rule) Replacement() m.Term {
	return r.replacement
}

func (r *Rule) String() string {
	return r.pattern.String() + " => " + r.replacement.String()
}

// Matches lazily yields every subtree of tree matching the pattern, in pre-order.
func (r *Rule) Matches(tree m.Term) iter.Seq[m.Match] {
	return func(yield func(m.Match) bool) {
		for position := range Traverse(tree) {
			substitution, ok := Match(r.pattern, position.Term)
			if !ok {
				continue
			}

			if !yield(m.Match{Root: position.Term, Path: position.Path, Substitution: substitution}) {
				return
			}
		}
	}
}

// Apply rewrites the first match only. A TermSet replacement collapses to its
// first alternative. Without a match tree is returned as is.
func (r *Rule) Apply(tree m.Term, observers ...RewriteObserver) (m.Term, error) {
	for match := range r.Matches(tree) {
		return r.rewrite(tree, match, observers)
	}

	return tree, nil
}

// Reduce rewrites every match found in the original tree, in traversal order,
// onto a single progressively rewritten tree. A match whose subtree was
// already replaced by an enclosing rewrite is skipped.
func (r *Rule) Reduce(tree m.Term, observers ...RewriteObserver) (m.Term, error) {
	matches := slices.Collect(r.Matches(tree))
	current := tree

	for _, match := range matches {
		if node, ok := At(current, match.Path); !ok || node != match.Root {
			continue
		}

		rewritten, err := r.rewrite(current, match, observers)
		if err != nil {
			return nil, err
		}

		current = rewritten
	}

	return current, nil
}

func (r *Rule) rewrite(tree m.Term, match m.Match, observers []RewriteObserver) (m.Term, error) {
	rewritten, err := Substitute(r.replacement, match.Substitution)
	if err != nil {
		return nil, fmt.Errorf("rewrite %s: %w", match.Root, err)
	}

	if set, ok := rewritten.(*m.TermSet); ok && set.Len() > 0 {
		rewritten = set.Term(0)
	}

	for _, observe := range observers {
		observe(match.Root, rewritten)
	}

	return Replace(tree, match.Path, rewritten), nil
}
