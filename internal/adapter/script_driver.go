package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	m "gooze.dev/pkg/morph/internal/model"
)

// ErrNoLocation is returned for terms that did not come from the last Parse.
var ErrNoLocation = errors.New("term has no source location")

// ScriptDriver parses and prints a JavaScript subset: declarations, functions,
// control flow and the full expression grammar with ES5 operators.
type ScriptDriver struct {
	mu    sync.RWMutex
	spans map[*m.Literal]m.Span
}

var _ SnippetDriver = (*ScriptDriver)(nil)

// NewScriptDriver creates a ScriptDriver.
func NewScriptDriver() *ScriptDriver {
	return &ScriptDriver{spans: make(map[*m.Literal]m.Span)}
}

// NewScriptDriverFactory returns a factory of independent script drivers.
func NewScriptDriverFactory() DriverFactory {
	return func() SnippetDriver {
		return NewScriptDriver()
	}
}

// Parse builds the tree of src. Its node locations replace those of any
// previous Parse.
func (d *ScriptDriver) Parse(ctx context.Context, src []byte) (m.Term, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	program, spans, err := parseScript(src)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.spans = spans
	d.mu.Unlock()

	return program, nil
}

// Unparse prints term in canonical form.
func (d *ScriptDriver) Unparse(ctx context.Context, term m.Term) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if term == nil {
		return "", fmt.Errorf("cannot print nil term")
	}

	return printScript(term)
}

// SourceLocation returns the half-open byte span of term in the last parsed text.
func (d *ScriptDriver) SourceLocation(term m.Term) (m.Span, error) {
	lit, ok := term.(*m.Literal)
	if !ok {
		return m.Span{}, fmt.Errorf("%w: %s", ErrNoLocation, term)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	span, ok := d.spans[lit]
	if !ok {
		return m.Span{}, fmt.Errorf("%w: %s", ErrNoLocation, term)
	}

	return span, nil
}

// LeafKinds returns the node kinds wrapping a single token leaf.
func (d *ScriptDriver) LeafKinds() []string {
	return append([]string(nil), leafKinds...)
}

// HoistKinds returns the node kinds a greedy placeholder replaces.
func (d *ScriptDriver) HoistKinds() []string {
	return append([]string(nil), hoistKinds...)
}

// Simplify drops the Program, statement and grouping wrappers that hold a
// single child, so "A + B" builds Add(Name(A), Name(B)).
func (d *ScriptDriver) Simplify(term m.Term) m.Term {
	lit, ok := term.(*m.Literal)
	if !ok {
		return term
	}

	for lit.Len() == 1 && isContainerKind(lit.Name()) {
		child, ok := lit.Child(0).(*m.Literal)
		if !ok {
			return lit.Child(0)
		}

		lit = child
	}

	if lit.IsLeaf() {
		return lit
	}

	children := lit.Children()
	for i, child := range children {
		children[i] = d.Simplify(child)
	}

	return m.NewLiteral(lit.Name(), children...)
}

func isContainerKind(kind string) bool {
	switch kind {
	case KindProgram, KindExprStmt, KindParen, KindBlock:
		return true
	}

	return false
}
