package domain

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"gooze.dev/pkg/morph/internal/adapter"
	m "gooze.dev/pkg/morph/internal/model"
)

// placeholderPattern matches identifiers written as pattern placeholders:
// upper case letters and digits, with a trailing underscore for greedy ones.
var placeholderPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*_?$`)

// Builder turns source snippets into patterns and replacements. Upper case
// identifiers become variables; a trailing underscore makes them greedy.
type Builder struct {
	driver    adapter.SnippetDriver
	rewriters []*Rule
}

// NewBuilder creates a Builder over driver. Without explicit rewriters the
// placeholder rules are used.
func NewBuilder(driver adapter.SnippetDriver, rewriters ...*Rule) *Builder {
	if len(rewriters) == 0 {
		rewriters = PlaceholderRules()
	}

	return &Builder{driver: driver, rewriters: rewriters}
}

// PlaceholderRules returns the rules rewriting placeholder leaves into
// variables: greedy placeholders first, then plain ones.
func PlaceholderRules() []*Rule {
	return []*Rule{
		placeholderRule("greedy_placeholder", true),
		placeholderRule("placeholder", false),
	}
}

func placeholderRule(name string, greedy bool) *Rule {
	pattern := m.NewVariable(name, m.WithCondition(func(term m.Term) bool {
		lit, ok := term.(*m.Literal)
		if !ok || !lit.IsLeaf() || !placeholderPattern.MatchString(lit.Name()) {
			return false
		}

		return strings.HasSuffix(lit.Name(), "_") == greedy
	}))

	replacement, err := m.NewDerived(func(terms []m.Term) (m.Term, error) {
		leaf, ok := terms[0].(*m.Literal)
		if !ok {
			return nil, &m.SubstitutionError{Name: name, Reason: "bound to a non-literal"}
		}

		if greedy {
			return m.NewVariable(VariableName(leaf.Name()), m.Greedy()), nil
		}

		return m.NewVariable(VariableName(leaf.Name())), nil
	}, name)
	if err != nil {
		panic(err)
	}

	rule, err := NewRule(pattern, replacement)
	if err != nil {
		panic(err)
	}

	return rule
}

// VariableName maps a placeholder as written ("LEFT", "ARGS_") to the name of
// the variable it stands for ("left", "args").
func VariableName(placeholder string) string {
	return strings.ToLower(strings.TrimSuffix(placeholder, "_"))
}

// Build parses each snippet into a term. One snippet yields its term, several
// yield a TermSet of them in order.
func (b *Builder) Build(ctx context.Context, snippets ...string) (m.Term, error) {
	if len(snippets) == 0 {
		return nil, fmt.Errorf("build: no snippets given")
	}

	terms := make([]m.Term, 0, len(snippets))

	for _, snippet := range snippets {
		term, err := b.build(ctx, snippet)
		if err != nil {
			return nil, err
		}

		terms = append(terms, term)
	}

	if len(terms) == 1 {
		return terms[0], nil
	}

	return m.NewTermSet(terms...), nil
}

// BuildPattern builds like Build, then lets every placeholder written in a
// value position match any leaf kind: "A" matches numbers, strings, names and
// keyword literals alike.
func (b *Builder) BuildPattern(ctx context.Context, snippets ...string) (m.Term, error) {
	term, err := b.Build(ctx, snippets...)
	if err != nil {
		return nil, err
	}

	return b.expandLeaves(term), nil
}

func (b *Builder) build(ctx context.Context, snippet string) (m.Term, error) {
	parsed, err := b.driver.Parse(ctx, []byte(snippet))
	if err != nil {
		return nil, fmt.Errorf("build %q: %w", snippet, err)
	}

	term := b.driver.Simplify(parsed)

	for _, rewriter := range b.rewriters {
		term, err = rewriter.Reduce(term)
		if err != nil {
			return nil, fmt.Errorf("build %q: %w", snippet, err)
		}
	}

	return b.hoist(term), nil
}

// hoist lets a greedy variable take the place of the identifier node wrapping
// it, so that it captures siblings of that node.
func (b *Builder) hoist(term m.Term) m.Term {
	switch t := term.(type) {
	case *m.Literal:
		if t.Len() == 1 && slices.Contains(b.driver.HoistKinds(), t.Name()) {
			if v, ok := t.Child(0).(*m.Variable); ok && v.IsGreedy() {
				return v
			}
		}

		return mapChildren(t, b.hoist)
	case *m.TermSet:
		return mapTerms(t, b.hoist)
	}

	return term
}

func (b *Builder) expandLeaves(term m.Term) m.Term {
	switch t := term.(type) {
	case *m.Literal:
		if t.Len() == 1 && slices.Contains(b.driver.LeafKinds(), t.Name()) {
			if v, ok := t.Child(0).(*m.Variable); ok && !v.IsGreedy() {
				kinds := b.driver.LeafKinds()
				alternatives := make([]m.Term, 0, len(kinds))

				for _, kind := range kinds {
					alternatives = append(alternatives, m.NewLiteral(kind, v))
				}

				return m.NewTermSet(alternatives...)
			}
		}

		return mapChildren(t, b.expandLeaves)
	case *m.TermSet:
		return mapTerms(t, b.expandLeaves)
	}

	return term
}

// Ensuring returns term with every variable called name constrained by condition.
func Ensuring(term m.Term, name string, condition m.Condition) m.Term {
	name = VariableName(name)

	return replaceVariables(term, name, func(v *m.Variable) m.Term {
		options := []m.VariableOption{m.WithCondition(condition)}
		if v.IsGreedy() {
			options = append(options, m.Greedy())
		}

		return m.NewVariable(v.Name(), options...)
	})
}

// Deriving returns term with every variable called name replaced by a Derived
// term computing its value from the variables called base.
func Deriving(term m.Term, name string, derivation m.Derivation, base ...string) (m.Term, error) {
	names := make([]string, 0, len(base))
	for _, b := range base {
		names = append(names, VariableName(b))
	}

	derived, err := m.NewDerived(derivation, names...)
	if err != nil {
		return nil, fmt.Errorf("deriving %s: %w", name, err)
	}

	return replaceVariables(term, VariableName(name), func(*m.Variable) m.Term {
		return derived
	}), nil
}

func replaceVariables(term m.Term, name string, replace func(*m.Variable) m.Term) m.Term {
	var visit func(m.Term) m.Term

	visit = func(term m.Term) m.Term {
		switch t := term.(type) {
		case *m.Variable:
			if t.Name() == name {
				return replace(t)
			}
		case *m.Literal:
			return mapChildren(t, visit)
		case *m.TermSet:
			return mapTerms(t, visit)
		}

		return term
	}

	return visit(term)
}

func mapChildren(lit *m.Literal, f func(m.Term) m.Term) m.Term {
	if lit.IsLeaf() {
		return lit
	}

	children := lit.Children()
	for i, child := range children {
		children[i] = f(child)
	}

	return m.NewLiteral(lit.Name(), children...)
}

func mapTerms(set *m.TermSet, f func(m.Term) m.Term) m.Term {
	terms := set.Terms()
	for i, term := range terms {
		terms[i] = f(term)
	}

	return m.NewTermSet(terms...)
}
