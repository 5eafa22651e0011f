package adapter

import (
	"context"

	m "gooze.dev/pkg/morph/internal/model"
)

// Driver converts between source text of one language and term trees.
type Driver interface {
	// Parse builds a term tree. Syntax errors are reported as *m.ParseError.
	Parse(ctx context.Context, src []byte) (m.Term, error)

	// Unparse renders a term tree, or a subtree of one, back to source text.
	Unparse(ctx context.Context, term m.Term) (string, error)

	// SourceLocation returns the byte span a term occupied in the text of the
	// most recent Parse call. Terms built by rewriting have no location.
	SourceLocation(term m.Term) (m.Span, error)
}

// Grammar describes the node vocabulary of a driver to snippet builders.
type Grammar interface {
	// LeafKinds lists the expression node kinds whose only child is a leaf
	// carrying the token text.
	LeafKinds() []string

	// HoistKinds lists the node kinds that wrap a single identifier leaf and
	// give way to a greedy placeholder written in that position.
	HoistKinds() []string

	// Simplify strips the container nodes wrapping a parsed snippet.
	Simplify(term m.Term) m.Term
}

// SnippetDriver is a Driver that also exposes its Grammar.
type SnippetDriver interface {
	Driver
	Grammar
}

// DriverFactory creates independent drivers for concurrent use.
type DriverFactory func() SnippetDriver
