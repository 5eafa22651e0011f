package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	m "gooze.dev/pkg/morph/internal/model"
)

func TestTraverser_PreOrder(t *testing.T) {
	tree := lit("Add", num("1"), lit("Multiply", num("2"), name("x")))

	var visited []string
	var paths []m.TermPath

	cursor := NewTraverser(tree)
	for {
		position, ok := cursor.Next()
		if !ok {
			break
		}

		visited = append(visited, position.Term.String())
		paths = append(paths, position.Path)
	}

	assert.Equal(t, []string{
		"Add(Number(1), Multiply(Number(2), Name(x)))",
		"Number(1)",
		"1",
		"Multiply(Number(2), Name(x))",
		"Number(2)",
		"2",
		"Name(x)",
		"x",
	}, visited)
	assert.Equal(t, m.TermPath{}, paths[0])
	assert.Equal(t, m.TermPath{1, 1, 0}, paths[7])

	_, ok := cursor.Next()
	assert.False(t, ok, "exhausted traverser stays exhausted")
}

func TestTraverser_NilTree(t *testing.T) {
	_, ok := NewTraverser(nil).Next()
	assert.False(t, ok)
}

func TestTraverser_DoesNotDescendIntoNonLiterals(t *testing.T) {
	tree := lit("Add", variable("a"), m.NewTermSet(num("1"), num("2")))

	count := 0
	for range Traverse(tree) {
		count++
	}

	assert.Equal(t, 3, count)
}

func TestTraverse_StopsEarly(t *testing.T) {
	tree := lit("Add", num("1"), num("2"))

	var first []string
	for position := range Traverse(tree) {
		first = append(first, position.Term.String())
		if len(first) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"Add(Number(1), Number(2))", "Number(1)"}, first)
}

func TestTraverser_PathsAreIndependent(t *testing.T) {
	tree := lit("Call", lit("Arguments", num("1"), num("2"), num("3")))

	var paths []m.TermPath
	for position := range Traverse(tree) {
		paths = append(paths, position.Path)
	}

	assert.Equal(t, m.TermPath{0, 0}, paths[2])
	assert.Equal(t, m.TermPath{0, 1}, paths[4])
	assert.Equal(t, m.TermPath{0, 2}, paths[6])
}
