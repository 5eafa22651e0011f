package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "gooze.dev/pkg/morph/internal/model"
)

func TestReplace(t *testing.T) {
	tree := lit("Add", num("1"), lit("Multiply", num("2"), num("3")))

	tests := []struct {
		name string
		path m.TermPath
		want string
	}{
		{"root", m.TermPath{}, "Name(x)"},
		{"child", m.TermPath{0}, "Add(Name(x), Multiply(Number(2), Number(3)))"},
		{"nested", m.TermPath{1, 1}, "Add(Number(1), Multiply(Number(2), Name(x)))"},
		{"out of range", m.TermPath{5}, "Add(Number(1), Multiply(Number(2), Number(3)))"},
		{"through a leaf", m.TermPath{0, 0, 0}, "Add(Number(1), Multiply(Number(2), Number(3)))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Replace(tree, tt.path, name("x")).String())
		})
	}

	assert.Equal(t, "Add(Number(1), Multiply(Number(2), Number(3)))", tree.String(), "input is not modified")
}

func TestReplace_SharesUntouchedSubtrees(t *testing.T) {
	left := num("1")
	tree := lit("Add", left, num("2"))

	replaced := Replace(tree, m.TermPath{1}, num("3")).(*m.Literal)

	assert.Same(t, left, replaced.Child(0))
	assert.Same(t, tree, Replace(tree, m.TermPath{9}, num("3")))
}

func TestReplaceTerm(t *testing.T) {
	first := num("1")
	second := num("1")
	tree := lit("Add", first, second)

	got := ReplaceTerm(tree, second, num("2"))
	assert.Equal(t, "Add(Number(1), Number(2))", got.String())

	assert.Same(t, tree, ReplaceTerm(tree, num("1"), num("2")), "an equal but distinct term is not located")
}

func TestLocateAndAt(t *testing.T) {
	target := name("x")
	tree := lit("Call", name("f"), lit("Arguments", num("1"), target))

	path, ok := Locate(tree, target)
	require.True(t, ok)
	assert.Equal(t, m.TermPath{1, 1}, path)

	node, ok := At(tree, path)
	require.True(t, ok)
	assert.Same(t, target, node)

	_, ok = At(tree, m.TermPath{1, 7})
	assert.False(t, ok)

	_, ok = Locate(tree, name("x"))
	assert.False(t, ok)
}
