package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteral(t *testing.T) {
	leaf := NewLiteral("4")
	lit := NewLiteral("Number", leaf)

	assert.True(t, leaf.IsLeaf())
	assert.False(t, lit.IsLeaf())
	assert.Equal(t, "Number", lit.Name())
	assert.Equal(t, 1, lit.Len())
	assert.Same(t, leaf, lit.Child(0))
	assert.Equal(t, "Number(4)", lit.String())
}

func TestLiteral_ChildrenAreCopied(t *testing.T) {
	children := []Term{NewLiteral("a"), NewLiteral("b")}
	lit := NewLiteral("Pair", children...)

	children[0] = NewLiteral("z")
	assert.Equal(t, "Pair(a, b)", lit.String())

	got := lit.Children()
	got[1] = NewLiteral("z")
	assert.Equal(t, "Pair(a, b)", lit.String())
}

func TestVariable(t *testing.T) {
	plain := NewVariable("left")
	greedy := NewVariable("args", Greedy())
	even := NewVariable("n", WithCondition(func(term Term) bool {
		lit, ok := term.(*Literal)
		return ok && lit.Name() == "2"
	}))

	assert.Equal(t, "LEFT", plain.String())
	assert.Equal(t, "ARGS_", greedy.String())
	assert.False(t, plain.IsGreedy())
	assert.True(t, greedy.IsGreedy())
	assert.Nil(t, plain.Condition())
	assert.True(t, plain.Accepts(NewLiteral("x")))
	assert.True(t, even.Accepts(NewLiteral("2")))
	assert.False(t, even.Accepts(NewLiteral("3")))
}

func TestTermSet(t *testing.T) {
	set := NewTermSet(NewLiteral("a"), NewLiteral("b"))

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, "b", set.Term(1).String())
	assert.Equal(t, "either(a, b)", set.String())
}

func TestNewDerived(t *testing.T) {
	_, err := NewDerived(nil)
	require.Error(t, err)

	_, err = NewDerived(nil, "a", "b")
	require.Error(t, err)

	identity, err := NewDerived(nil, "a")
	require.NoError(t, err)
	assert.Equal(t, "derive(A)", identity.String())

	got, err := identity.Derive([]Term{NewLiteral("x")})
	require.NoError(t, err)
	assert.Equal(t, "x", got.String())

	_, err = identity.Derive([]Term{NewLiteral("x"), NewLiteral("y")})
	require.ErrorIs(t, err, ErrSubstitution)

	joined, err := NewDerived(func(terms []Term) (Term, error) {
		return NewLiteral("Pair", terms...), nil
	}, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, joined.Base())

	got, err = joined.Derive([]Term{NewLiteral("x"), NewLiteral("y")})
	require.NoError(t, err)
	assert.Equal(t, "Pair(x, y)", got.String())
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Term
		want bool
	}{
		{"same leaf", NewLiteral("a"), NewLiteral("a"), true},
		{"different leaf", NewLiteral("a"), NewLiteral("b"), false},
		{"nested", NewLiteral("Add", NewLiteral("1"), NewLiteral("2")), NewLiteral("Add", NewLiteral("1"), NewLiteral("2")), true},
		{"different arity", NewLiteral("Add", NewLiteral("1")), NewLiteral("Add", NewLiteral("1"), NewLiteral("2")), false},
		{"variables by name", NewVariable("a"), NewVariable("a"), true},
		{"variables by greediness", NewVariable("a"), NewVariable("a", Greedy()), false},
		{"literal and variable", NewLiteral("a"), NewVariable("a"), false},
		{"term sets", NewTermSet(NewLiteral("a")), NewTermSet(NewLiteral("a")), true},
		{"nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestSize(t *testing.T) {
	tree := NewLiteral("Add", NewLiteral("Number", NewLiteral("1")), NewVariable("b"))

	assert.Equal(t, 4, Size(tree))
	assert.Equal(t, 1, Size(NewVariable("a")))
}

func TestErrors(t *testing.T) {
	parseErr := fmt.Errorf("build: %w", &ParseError{Line: 1, Column: 5, Message: "unexpected token"})
	assert.ErrorIs(t, parseErr, ErrParse)
	assert.Contains(t, parseErr.Error(), "1:5")

	var target *ParseError
	require.True(t, errors.As(parseErr, &target))
	assert.Equal(t, 5, target.Column)

	substErr := fmt.Errorf("rewrite: %w", &SubstitutionError{Name: "a"})
	assert.ErrorIs(t, substErr, ErrSubstitution)
	assert.NotErrorIs(t, substErr, ErrParse)
	assert.Contains(t, substErr.Error(), `"a" is not bound`)
}

func TestBinding(t *testing.T) {
	single := Bind(NewLiteral("a"))
	all := BindAll([]Term{NewLiteral("a"), NewLiteral("b")})

	assert.Equal(t, "a", single.Term().String())
	assert.False(t, single.Greedy)
	assert.True(t, all.Greedy)
	assert.True(t, all.Equal(BindAll([]Term{NewLiteral("a"), NewLiteral("b")})))
	assert.False(t, all.Equal(single))
	assert.Nil(t, Binding{}.Term())

	substitution := Substitution{WholeMatch: single}
	clone := substitution.Clone()
	clone["x"] = all

	assert.Len(t, substitution, 1)
	assert.Equal(t, "a", substitution.Root().String())
}

func TestTestStatus_UnmarshalText(t *testing.T) {
	var status TestStatus
	require.NoError(t, status.UnmarshalText([]byte("timeout")))
	assert.Equal(t, Timeout, status)

	require.Error(t, status.UnmarshalText([]byte("exploded")))
	assert.Equal(t, "status(42)", TestStatus(42).String())
}

func TestSpan(t *testing.T) {
	span := Span{Start: 3, End: 8}

	assert.Equal(t, 5, span.Len())
	assert.Equal(t, "[3,8)", span.String())
}
